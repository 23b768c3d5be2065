package domain

// ExerciseRef is a denormalized snapshot of a catalog exercise plus the
// user-entered prescription (sets/reps/rest). The snapshot is captured at
// selection time and is not re-synced if the catalog entry changes later.
type ExerciseRef struct {
	ExerciseID string   `json:"exerciseId"`
	Name       string   `json:"name"`
	BodyParts  []string `json:"bodyParts,omitempty"`
	Equipments []string `json:"equipments,omitempty"`
	Sets       string   `json:"sets"`
	Reps       string   `json:"reps"`
	RestTime   string   `json:"restTime"`
}

// Workout is a named, ordered collection of exercise prescriptions, owned
// exclusively by one user. ID is the store-assigned key.
type Workout struct {
	ID            string        `json:"id,omitempty"`
	Name          string        `json:"name"`
	Exercises     []ExerciseRef `json:"exercises"`
	SchemaVersion int           `json:"schemaVersion"`
}

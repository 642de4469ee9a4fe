package models

// Exercise is a catalogue entry returned by the exercises endpoints.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Series      int    `json:"series"`
	Repetitions int    `json:"repetitions"`
	Group       string `json:"group"`
	Demo        string `json:"demo"`
	Thumb       string `json:"thumb"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// HistoryRecord is a single completed exercise.
type HistoryRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	Hour      string `json:"hour"`
	CreatedAt string `json:"created_at"`
}

// HistoryDay groups completed exercises by day; Title is the day label.
type HistoryDay struct {
	Title string          `json:"title"`
	Data  []HistoryRecord `json:"data"`
}

// RegisterHistoryRequest is the body of POST /history.
type RegisterHistoryRequest struct {
	ExerciseID string `json:"exercise_id"`
}

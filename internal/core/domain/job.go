package domain

import "time"

// JobStatus is the processing state of a queued recommendation job.
type JobStatus int

const (
	JobQueued JobStatus = iota
	JobRunning
	JobDone
)

// Job is a recommendation request owned by one user and targeting another.
type Job struct {
	ID           int64     `json:"id" bson:"_id"`
	OwnerID      int64     `json:"owner_id" bson:"owner_id"`
	TargetUserID int64     `json:"target_user_id" bson:"target_user_id"`
	Status       JobStatus `json:"status" bson:"status"`
	AddedTime    time.Time `json:"added_time" bson:"added_time"`
}

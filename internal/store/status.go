package store

// Status is the request lifecycle of a store.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Op tags which CRUD action a store is currently mid-flight on. It clears on
// completion regardless of outcome. Concurrent operations of different kinds
// overwrite it with whichever settles last.
type Op string

const (
	OpNone        Op = ""
	OpFetch       Op = "fetch"
	OpFetchShared Op = "fetch-shared"
	OpAdd         Op = "add"
	OpUpdate      Op = "update"
	OpDelete      Op = "delete"
)

// Package state holds the story list and the pure reducer that drives its
// fetch lifecycle.
//
// # Transitions
//
//	FetchInit            IsLoading=true   IsError=false  Items kept
//	FetchSuccess{Items}  IsLoading=false  IsError=false  Items replaced
//	FetchFailure         IsLoading=false  IsError=true   Items kept
//	Remove{ObjectID}     flags kept                      matching stories dropped
//
// Reduce is deterministic and never writes to its input. FetchSuccess copies
// the incoming slice; Remove allocates a new one. Action is sealed by an
// unexported method, so the only way to reach the panicking default branch is
// a nil Action, which is a programming error.
package state

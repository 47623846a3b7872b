package config

import "strconv"

// cacheKeys groups the Redis key builders used for login-session tracking.
type cacheKeys struct{}

// CacheKey exposes Redis key builders as a namespaced singleton.
var CacheKey = cacheKeys{}

// StudentSessionKey returns the key holding a student's active session JTI.
func (cacheKeys) StudentSessionKey(studentID int) string {
	return "session:student:" + strconv.Itoa(studentID)
}

// ProfessorSessionKey returns the key holding a professor's active session JTI.
func (cacheKeys) ProfessorSessionKey(professorID int) string {
	return "session:professor:" + strconv.Itoa(professorID)
}

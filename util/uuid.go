package util

import "github.com/google/uuid"

// PsuUUID generates a random UUID string for session and job identifiers
func PsuUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

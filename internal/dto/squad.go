package dto

// MutationResponse is the uniform envelope for squad mutations. ID and Error
// are pointers without omitempty so an absent value encodes as a literal
// JSON null: clients test `error === null` to detect success.
type MutationResponse struct {
	ID      *string `json:"id"`
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

// MutationSuccess builds the success envelope. An empty id (delete has none)
// still encodes as null.
func MutationSuccess(id string) MutationResponse {
	resp := MutationResponse{Success: true}
	if id != "" {
		resp.ID = &id
	}
	return resp
}

// MutationFailure builds the failure envelope with a human-readable message.
func MutationFailure(message string) MutationResponse {
	return MutationResponse{Success: false, Error: &message}
}

// DeleteResponse is the envelope for squad deletion, which carries no id.
type DeleteResponse struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

// DeleteSuccess builds the success envelope for deletion.
func DeleteSuccess() DeleteResponse {
	return DeleteResponse{Success: true}
}

// DeleteFailure builds the failure envelope for deletion.
func DeleteFailure(message string) DeleteResponse {
	return DeleteResponse{Success: false, Error: &message}
}

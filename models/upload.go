package models

// Upload is one file received from the user, read fully into memory.
type Upload struct {
	Name string
	Data []byte
}

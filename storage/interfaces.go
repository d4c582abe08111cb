package storage

// TableWriter is the interface any export format must satisfy. The header
// is written on construction; Close finalizes the artifact.
type TableWriter interface {
	Write(records [][]string) error
	Close() error
}

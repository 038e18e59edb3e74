// Package state keeps decoded launchpad records in sync with the chain. It
// provides fetch-once initial loads, deduplicated account watches and a rate
// limited refresh for program scans.
package state

import (
	"github.com/letscook/cook-client/pkg/solana/cook"
)

// Decoder decodes non-empty account data.
type Decoder[T any] func(data []byte) (T, error)

// RecordDecoder returns a Decoder for a cook record type, for example
// RecordDecoder[cook.LaunchRecord]().
func RecordDecoder[T any, P interface {
	*T
	cook.Record
}]() Decoder[P] {
	return func(data []byte) (P, error) {
		record := P(new(T))
		if err := record.Unmarshal(data); err != nil {
			return nil, err
		}
		return record, nil
	}
}

// Snapshot is the last known state of an account. Present is false when the
// account does not exist or was closed.
type Snapshot[T any] struct {
	Value   T
	Present bool
}

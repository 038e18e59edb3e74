package main

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/cook"
	"github.com/letscook/cook-client/pkg/solana/token"
)

// Token program accounts that can be decoded next to launchpad records.
const (
	kindTokenMint    = "token_mint"
	kindTokenAccount = "token_account"
)

// decodeAccount fetches address and decodes it as kind.
func decodeAccount(ctx context.Context, reader network.Reader, kind string, address ed25519.PublicKey) (interface{}, error) {
	var decode func([]byte) (interface{}, error)
	switch kind {
	case kindTokenMint:
		decode = func(b []byte) (interface{}, error) { return token.UnmarshalMint(b) }
	case kindTokenAccount:
		decode = func(b []byte) (interface{}, error) { return token.UnmarshalAccount(b) }
	default:
		recordKind, err := cook.ParseRecordKind(kind)
		if err != nil {
			return nil, err
		}
		decode = func(b []byte) (interface{}, error) {
			record, _, err := cook.DecodeRecord(recordKind, b)
			return record, err
		}
	}

	data, ok, err := reader.GetAccountBytes(ctx, address)
	if err != nil {
		return nil, err
	} else if !ok || len(data) == 0 {
		return nil, errors.Errorf("no %s account at %s", kind, solana.PublicKeyString(address))
	}

	v, err := decode(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func recordKinds() []string {
	var kinds []string
	for k := cook.RecordKindCollection; k <= cook.RecordKindAssignment; k++ {
		kinds = append(kinds, k.String())
	}
	return append(kinds, kindTokenMint, kindTokenAccount)
}

// Package orao derives the accounts of the Orao VRF program used to seed
// randomness for claims.
package orao

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/binary"
)

var PROGRAM_ID = solana.MustPublicKeyFromString("VRFzZoJdhFWL8rkvu87LpKM3RbcVezpMEc6X5GVDr7y")

var (
	NetworkConfigurationPrefix = []byte("orao-vrf-network-configuration")
	RandomnessRequestPrefix    = []byte("orao-vrf-randomness-request")
)

const (
	RandomnessSize = 64

	networkStateTreasuryOffset = 8 // after the account discriminator
)

type GetNetworkStateAddressArgs struct {
	Program ed25519.PublicKey
}

// GetNetworkStateAddress returns the network configuration account. A nil
// Program uses PROGRAM_ID.
func GetNetworkStateAddress(args *GetNetworkStateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		NetworkConfigurationPrefix,
	)
}

type GetRandomnessAddressArgs struct {
	Program ed25519.PublicKey
	Seed    [32]byte
}

func GetRandomnessAddress(args *GetRandomnessAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		RandomnessRequestPrefix,
		args.Seed[:],
	)
}

// NetworkState is the part of the network configuration the claim needs.
type NetworkState struct {
	Treasury ed25519.PublicKey
}

func UnmarshalNetworkState(data []byte) (*NetworkState, error) {
	d := binary.NewDecoderAt(data, networkStateTreasuryOffset)
	treasury := d.Key()
	if err := d.Err(); err != nil {
		return nil, errors.Wrap(err, "invalid network state")
	}
	return &NetworkState{Treasury: treasury}, nil
}

type RandomnessResponse struct {
	PublicKey  ed25519.PublicKey
	Randomness [RandomnessSize]byte
}

// Randomness is a fulfilled or pending randomness request.
type Randomness struct {
	Seed       [32]byte
	Randomness [RandomnessSize]byte
	Responses  []RandomnessResponse
}

func UnmarshalRandomness(data []byte) (*Randomness, error) {
	d := binary.NewDecoder(data)

	var r Randomness
	copy(r.Seed[:], d.Fixed(len(r.Seed)))
	copy(r.Randomness[:], d.Fixed(RandomnessSize))

	n := d.SeqLen(32 + RandomnessSize)
	for i := 0; i < n && d.Err() == nil; i++ {
		var resp RandomnessResponse
		resp.PublicKey = d.Key()
		copy(resp.Randomness[:], d.Fixed(RandomnessSize))
		r.Responses = append(r.Responses, resp)
	}

	if err := d.Err(); err != nil {
		return nil, errors.Wrap(err, "invalid randomness account")
	}
	return &r, nil
}

// Fulfilled reports whether any non zero randomness has been written.
func (r *Randomness) Fulfilled() bool {
	for _, b := range r.Randomness {
		if b != 0 {
			return true
		}
	}
	return false
}

func programOrDefault(program ed25519.PublicKey) ed25519.PublicKey {
	if len(program) == 0 {
		return PROGRAM_ID
	}
	return program
}

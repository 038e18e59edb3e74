package cook

import (
	"github.com/letscook/cook-client/pkg/solana/binary"
)

// CollectionMeta describes how a collection hands out its assets.
type CollectionMeta interface {
	Name() string
	isCollectionMeta()
}

type RandomFixedSupply struct {
	Availability []byte
}

type RandomUnlimited struct{}

func (RandomFixedSupply) Name() string { return "RandomFixedSupply" }
func (RandomUnlimited) Name() string   { return "RandomUnlimited" }

func (RandomFixedSupply) isCollectionMeta() {}
func (RandomUnlimited) isCollectionMeta()   {}

func decodeCollectionMeta(d *binary.Decoder) CollectionMeta {
	tag := d.Tag()
	if d.Err() != nil {
		return nil
	}

	switch tag {
	case 0:
		return RandomFixedSupply{Availability: d.Bytes()}
	case 1:
		return RandomUnlimited{}
	}

	d.UnknownTag("collection meta", tag)
	return nil
}

func encodeCollectionMeta(e *binary.Encoder, m CollectionMeta) {
	switch v := m.(type) {
	case RandomFixedSupply:
		e.Tag(0)
		e.Bytes(v.Availability)
	case RandomUnlimited:
		e.Tag(1)
	default:
		e.UnknownVariant("collection meta", m)
	}
}

// LaunchMeta describes how a launch distributes tickets.
type LaunchMeta interface {
	Name() string
	isLaunchMeta()
}

type Raffle struct{}

type FCFS struct{}

type IDO struct {
	FractionDistributed [8]byte
	TokensDistributed   uint64
}

func (Raffle) Name() string { return "Raffle" }
func (FCFS) Name() string   { return "FCFS" }
func (IDO) Name() string    { return "IDO" }

func (Raffle) isLaunchMeta() {}
func (FCFS) isLaunchMeta()   {}
func (IDO) isLaunchMeta()    {}

func decodeLaunchMeta(d *binary.Decoder) LaunchMeta {
	tag := d.Tag()
	if d.Err() != nil {
		return nil
	}

	switch tag {
	case 0:
		return Raffle{}
	case 1:
		return FCFS{}
	case 2:
		var ido IDO
		copy(ido.FractionDistributed[:], d.Fixed(len(ido.FractionDistributed)))
		ido.TokensDistributed = d.Uint64()
		return ido
	}

	d.UnknownTag("launch meta", tag)
	return nil
}

func encodeLaunchMeta(e *binary.Encoder, m LaunchMeta) {
	switch v := m.(type) {
	case Raffle:
		e.Tag(0)
	case FCFS:
		e.Tag(1)
	case IDO:
		e.Tag(2)
		e.Fixed(v.FractionDistributed[:], len(v.FractionDistributed))
		e.Uint64(v.TokensDistributed)
	default:
		e.UnknownVariant("launch meta", m)
	}
}

package token

import (
	"crypto/ed25519"
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"

	codec "github.com/letscook/cook-client/pkg/solana/binary"
)

// MintSize is the size of the base mint state shared by both token programs.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L17
const MintSize = 82

// AccountType is the byte that follows the base state of a Token-2022 account
// with extensions. Mints are padded to AccountSize so the byte sits at the same
// offset for both mints and token accounts.
type AccountType byte

const (
	AccountTypeUninitialized AccountType = iota
	AccountTypeMint
	AccountTypeAccount
)

// ExtensionType identifies a Token-2022 TLV entry.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token/program-2022/src/extension/mod.rs
type ExtensionType uint16

const (
	ExtensionTransferFeeConfig ExtensionType = 1
	ExtensionPermanentDelegate ExtensionType = 12
	ExtensionTransferHook      ExtensionType = 14
	ExtensionMetadataPointer   ExtensionType = 18
	ExtensionTokenMetadata     ExtensionType = 19
)

// ExtensionFlags is a bit set of the extensions the launchpad cares about.
type ExtensionFlags uint8

const (
	FlagTransferFee       ExtensionFlags = 1
	FlagPermanentDelegate ExtensionFlags = 2
	FlagTransferHook      ExtensionFlags = 4
)

func (f ExtensionFlags) Has(flag ExtensionFlags) bool {
	return f&flag == flag
}

func (f ExtensionFlags) String() string {
	var names []string
	if f.Has(FlagTransferFee) {
		names = append(names, "transfer_fee")
	}
	if f.Has(FlagPermanentDelegate) {
		names = append(names, "permanent_delegate")
	}
	if f.Has(FlagTransferHook) {
		names = append(names, "transfer_hook")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

var ErrInvalidMint = errors.New("invalid mint account")

type TransferFee struct {
	Epoch                  uint64
	MaximumFee             uint64
	TransferFeeBasisPoints uint16
}

type TransferFeeConfig struct {
	ConfigAuthority   ed25519.PublicKey
	WithdrawAuthority ed25519.PublicKey
	WithheldAmount    uint64
	OlderTransferFee  TransferFee
	NewerTransferFee  TransferFee
}

type TransferHook struct {
	Authority ed25519.PublicKey
	ProgramID ed25519.PublicKey
}

type MetadataPointer struct {
	Authority       ed25519.PublicKey
	MetadataAddress ed25519.PublicKey
}

// TokenMetadata is the metadata stored inline in a Token-2022 mint.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token-metadata/interface/src/state.rs
type TokenMetadata struct {
	UpdateAuthority    ed25519.PublicKey
	Mint               ed25519.PublicKey
	Name               string
	Symbol             string
	URI                string
	AdditionalMetadata [][2]string
}

// Mint is the base mint state plus any recognized Token-2022 extensions.
// Unrecognized extensions are skipped.
type Mint struct {
	MintAuthority   ed25519.PublicKey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority ed25519.PublicKey

	TransferFeeConfig *TransferFeeConfig
	PermanentDelegate ed25519.PublicKey
	TransferHook      *TransferHook
	MetadataPointer   *MetadataPointer
	TokenMetadata     *TokenMetadata
}

// UnmarshalMint parses mint account data owned by either token program.
func UnmarshalMint(b []byte) (*Mint, error) {
	if len(b) < MintSize {
		return nil, errors.Wrapf(ErrInvalidMint, "expected at least %d bytes, got %d", MintSize, len(b))
	}

	var m Mint
	var offset int
	codec.GetOptionalKey32(b[offset:], &m.MintAuthority, &offset, optionSize)
	codec.GetUint64(b[offset:], &m.Supply, &offset)
	codec.GetUint8(b[offset:], &m.Decimals, &offset)
	codec.GetBool(b[offset:], &m.IsInitialized, &offset)
	codec.GetOptionalKey32(b[offset:], &m.FreezeAuthority, &offset, optionSize)

	if len(b) == MintSize {
		return &m, nil
	}
	if len(b) <= AccountSize {
		return nil, errors.Wrapf(ErrInvalidMint, "unexpected mint size %d", len(b))
	}
	if AccountType(b[AccountSize]) != AccountTypeMint {
		return nil, errors.Wrapf(ErrInvalidMint, "account type %d is not a mint", b[AccountSize])
	}

	if err := m.unmarshalExtensions(b[AccountSize+1:]); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Mint) unmarshalExtensions(tlv []byte) error {
	for offset := 0; offset+4 <= len(tlv); {
		extType := ExtensionType(binary.LittleEndian.Uint16(tlv[offset:]))
		length := int(binary.LittleEndian.Uint16(tlv[offset+2:]))
		offset += 4

		// Trailing zero padding reads as an uninitialized entry.
		if extType == 0 {
			break
		}
		if offset+length > len(tlv) {
			return errors.Wrapf(ErrInvalidMint, "extension %d of %d bytes overruns data", extType, length)
		}

		value := tlv[offset : offset+length]
		offset += length

		if err := m.unmarshalExtension(extType, value); err != nil {
			return errors.Wrapf(err, "invalid extension %d", extType)
		}
	}

	return nil
}

func (m *Mint) unmarshalExtension(extType ExtensionType, value []byte) error {
	d := codec.NewDecoder(value)

	switch extType {
	case ExtensionTransferFeeConfig:
		var cfg TransferFeeConfig
		cfg.ConfigAuthority = nonZero(d.Key())
		cfg.WithdrawAuthority = nonZero(d.Key())
		cfg.WithheldAmount = d.Uint64()
		for _, fee := range []*TransferFee{&cfg.OlderTransferFee, &cfg.NewerTransferFee} {
			fee.Epoch = d.Uint64()
			fee.MaximumFee = d.Uint64()
			fee.TransferFeeBasisPoints = d.Uint16()
		}
		m.TransferFeeConfig = &cfg
	case ExtensionPermanentDelegate:
		m.PermanentDelegate = nonZero(d.Key())
	case ExtensionTransferHook:
		m.TransferHook = &TransferHook{
			Authority: nonZero(d.Key()),
			ProgramID: nonZero(d.Key()),
		}
	case ExtensionMetadataPointer:
		m.MetadataPointer = &MetadataPointer{
			Authority:       nonZero(d.Key()),
			MetadataAddress: nonZero(d.Key()),
		}
	case ExtensionTokenMetadata:
		md := TokenMetadata{
			UpdateAuthority: nonZero(d.Key()),
			Mint:            d.Key(),
			Name:            d.Text(),
			Symbol:          d.Text(),
			URI:             d.Text(),
		}
		n := d.SeqLen(8)
		for i := 0; i < n && d.Err() == nil; i++ {
			md.AdditionalMetadata = append(md.AdditionalMetadata, [2]string{d.Text(), d.Text()})
		}
		m.TokenMetadata = &md
	}

	return d.Err()
}

// TransferHookProgram returns the configured hook program, or nil when the
// mint has no hook or the hook program is unset.
func (m *Mint) TransferHookProgram() ed25519.PublicKey {
	if m.TransferHook == nil {
		return nil
	}
	return m.TransferHook.ProgramID
}

// Metadata returns the inline name, symbol and uri, if present.
func (m *Mint) Metadata() (name, symbol, uri string, ok bool) {
	if m.TokenMetadata == nil {
		return "", "", "", false
	}
	return m.TokenMetadata.Name, m.TokenMetadata.Symbol, m.TokenMetadata.URI, true
}

func (m *Mint) ExtensionFlags() ExtensionFlags {
	var flags ExtensionFlags
	if m.TransferFeeConfig != nil {
		flags |= FlagTransferFee
	}
	if m.PermanentDelegate != nil {
		flags |= FlagPermanentDelegate
	}
	if m.TransferHookProgram() != nil {
		flags |= FlagTransferHook
	}
	return flags
}

// Marshal encodes the base state followed by the recognized extensions in a
// fixed order. A mint without extensions encodes to MintSize bytes.
func (m *Mint) Marshal() []byte {
	b := make([]byte, MintSize)

	var offset int
	codec.PutOptionalKey32(b[offset:], m.MintAuthority, &offset, optionSize)
	codec.PutUint64(b[offset:], m.Supply, &offset)
	codec.PutUint8(b[offset:], m.Decimals, &offset)
	if m.IsInitialized {
		b[offset] = 1
	}
	offset++
	codec.PutOptionalKey32(b[offset:], m.FreezeAuthority, &offset, optionSize)

	var tlv []byte
	appendEntry := func(extType ExtensionType, encode func(e *codec.Encoder)) {
		e := codec.NewEncoder(64)
		encode(e)
		value, _ := e.Result()

		tlv = binary.LittleEndian.AppendUint16(tlv, uint16(extType))
		tlv = binary.LittleEndian.AppendUint16(tlv, uint16(len(value)))
		tlv = append(tlv, value...)
	}

	if cfg := m.TransferFeeConfig; cfg != nil {
		appendEntry(ExtensionTransferFeeConfig, func(e *codec.Encoder) {
			e.Key(cfg.ConfigAuthority)
			e.Key(cfg.WithdrawAuthority)
			e.Uint64(cfg.WithheldAmount)
			for _, fee := range []TransferFee{cfg.OlderTransferFee, cfg.NewerTransferFee} {
				e.Uint64(fee.Epoch)
				e.Uint64(fee.MaximumFee)
				e.Uint16(fee.TransferFeeBasisPoints)
			}
		})
	}
	if m.PermanentDelegate != nil {
		appendEntry(ExtensionPermanentDelegate, func(e *codec.Encoder) {
			e.Key(m.PermanentDelegate)
		})
	}
	if hook := m.TransferHook; hook != nil {
		appendEntry(ExtensionTransferHook, func(e *codec.Encoder) {
			e.Key(hook.Authority)
			e.Key(hook.ProgramID)
		})
	}
	if ptr := m.MetadataPointer; ptr != nil {
		appendEntry(ExtensionMetadataPointer, func(e *codec.Encoder) {
			e.Key(ptr.Authority)
			e.Key(ptr.MetadataAddress)
		})
	}
	if md := m.TokenMetadata; md != nil {
		appendEntry(ExtensionTokenMetadata, func(e *codec.Encoder) {
			e.Key(md.UpdateAuthority)
			e.Key(md.Mint)
			e.Text(md.Name)
			e.Text(md.Symbol)
			e.Text(md.URI)
			e.SeqLen(len(md.AdditionalMetadata))
			for _, kv := range md.AdditionalMetadata {
				e.Text(kv[0])
				e.Text(kv[1])
			}
		})
	}

	if len(tlv) == 0 {
		return b
	}

	out := make([]byte, AccountSize+1, AccountSize+1+len(tlv))
	copy(out, b)
	out[AccountSize] = byte(AccountTypeMint)
	return append(out, tlv...)
}

func nonZero(key ed25519.PublicKey) ed25519.PublicKey {
	for _, b := range key {
		if b != 0 {
			return key
		}
	}
	return nil
}

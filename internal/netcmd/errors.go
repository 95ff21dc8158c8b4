// Package netcmd is the command catalogue (C9): CreateTrunk, CreateWan,
// RenameWan, SetMacAddr, SetIpv4Params, SetIpv6Params. Each command is a
// struct plus a pure Exec(reads) (result, []event.Event, error) method (the
// authoritative rule) and a Process(ctx, tx) adapter that performs the
// declared reads then calls Exec.
package netcmd

import (
	"errors"

	"github.com/chomba/rackd/internal/valobj"
)

// Precondition-class sentinels: reported, no state change.
var (
	ErrRackUninitialized     = errors.New("rack is not initialized")
	ErrRackNotFound          = errors.New("rack not found")
	ErrTrunkNotFound         = errors.New("trunk not found")
	ErrWanNotFound           = errors.New("wan not found")
	ErrNameAlreadyInUse      = errors.New("name already in use")
	ErrTrunkVlanAlreadyInUse = errors.New("trunk/vlan pair already in use")
	ErrAlreadySet            = errors.New("value already set")
	ErrConnectionIsPPPoE     = errors.New("connection is pppoe")
)

// Validation-class sentinels are re-exported from valobj so callers only
// import one package for every command error.
var (
	ErrInvalidPrefixLength = valobj.ErrInvalidPrefixLength
	ErrInvalidIpv6Address  = valobj.ErrInvalidIpv6Address
	ErrInvalidIpv6Gateway  = valobj.ErrInvalidIpv6Gateway
	ErrInvalidMaskLength   = valobj.ErrInvalidMaskLength
	ErrInvalidIpv4Address  = valobj.ErrInvalidIpv4Address
	ErrInvalidIpv4Gateway  = valobj.ErrInvalidIpv4Gateway
)

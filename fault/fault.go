// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type ExistsError GenericError
type InternalError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PhaseError GenericError
type ProcessError GenericError
type ValueError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised                  = ExistsError("already initialised")
	ErrBalanceIsPositive                   = ValueError("balance is positive")
	ErrCapExceeded                         = ValueError("cap exceeded")
	ErrCertificateFileAlreadyExists        = ExistsError("certificate file already exists")
	ErrDuplicateEntry                      = ExistsError("duplicate entry")
	ErrEventQueueFull                      = ProcessError("event queue full")
	ErrInconsistentParameter               = InvalidError("inconsistent parameter")
	ErrInsufficientAllowance               = ValueError("insufficient allowance")
	ErrInsufficientFunds                   = ValueError("insufficient funds")
	ErrInsufficientTransferCredits         = ValueError("insufficient transfer credits")
	ErrInternalMethod                      = InternalError("internal method")
	ErrInvalidAccount                      = InvalidError("invalid account")
	ErrInvalidChain                        = InvalidError("invalid chain")
	ErrInvalidConfiguration                = InvalidError("invalid configuration")
	ErrInvalidCount                        = InvalidError("invalid count")
	ErrInvalidForwardedCaller              = InvalidError("invalid forwarded caller")
	ErrInvalidIPAddress                    = InvalidError("invalid IP address")
	ErrInvalidPortNumber                   = InvalidError("invalid port number")
	ErrInvalidPhase                        = PhaseError("invalid phase")
	ErrInvalidPrivileges                   = InvalidError("invalid privileges")
	ErrInvalidRecord                       = InvalidError("invalid record")
	ErrInvalidStructPointer                = InvalidError("invalid struct pointer")
	ErrInvalidSymbol                       = InvalidError("invalid symbol")
	ErrKeyFileAlreadyExists                = ExistsError("key file already exists")
	ErrMissingParameters                   = InvalidError("missing parameters")
	ErrNonExistentEntry                    = NotFoundError("non-existent entry")
	ErrNotInitialised                      = NotFoundError("not initialised")
	ErrOverflow                            = ValueError("arithmetic overflow")
	ErrOverfunded                          = ValueError("overfunded")
	ErrRateLimiting                        = ProcessError("rate limiting")
	ErrRequiresContinuousSupply            = InvalidError("requires continuous supply")
	ErrRequiresDifferentSenderAndRecipient = InvalidError("requires different sender and recipient")
	ErrRequiresFastCaller                  = AuthorisationError("requires fast caller")
	ErrRequiresFastGovernorship            = AuthorisationError("requires fast governorship")
	ErrRequiresFastMembership              = AuthorisationError("requires fast membership")
	ErrRequiresIssuerMembership            = AuthorisationError("requires issuer membership")
	ErrRequiresManagerCaller               = AuthorisationError("requires manager caller")
	ErrRequiresMarketplaceMembership       = AuthorisationError("requires marketplace membership")
	ErrRequiresNoFastMemberships           = InvalidError("requires no fast memberships")
	ErrRequiresOwner                       = AuthorisationError("requires owner")
	ErrTokenContractError                  = ProcessError("token contract error")
	ErrTransactionInProgress               = ProcessError("transaction in progress")
	ErrTransactionFinished                 = ProcessError("transaction finished")
	ErrUnderflow                           = ValueError("arithmetic underflow")
	ErrUnknownBeneficiary                  = NotFoundError("unknown beneficiary")
	ErrUnknownEntity                       = NotFoundError("unknown entity")
	ErrUnknownPledger                      = NotFoundError("unknown pledger")
	ErrUnknownRestrictionCode              = InvalidError("unknown restriction code")
	ErrUnsupportedOperation                = InvalidError("unsupported operation")
	ErrWrongEntityKind                     = InvalidError("wrong entity kind")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorisationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InternalError) Error() string      { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e PhaseError) Error() string         { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e ValueError) Error() string         { return string(e) }

// determine the class of an error
func IsErrAuthorisation(e error) bool { _, ok := e.(AuthorisationError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInternal(e error) bool      { _, ok := e.(InternalError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrPhase(e error) bool         { _, ok := e.(PhaseError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
func IsErrValue(e error) bool         { _, ok := e.(ValueError); return ok }

// IsErrEntry - duplicate or unknown entry in a keyed collection
func IsErrEntry(e error) bool { return IsErrExists(e) || IsErrNotFound(e) }

/*
 * errors.go, part of gocavity.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import "errors"

//Sentinel errors. Errors returned by the library wrap one of these, so callers can
//use errors.Is to tell configuration problems from bad input.
var (
	ErrNoAtoms         = errors.New("no atoms")
	ErrBadOption       = errors.New("invalid option")
	ErrMissingType     = errors.New("missing field type")
	ErrMissingTable    = errors.New("missing potential table")
	ErrMissingTemplate = errors.New("missing probe template")
	ErrShape           = errors.New("dimension mismatch")
)

//Error is the error type for the library. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error struct {
	message  string
	deco     []string
	critical bool
	kind     error //one of the sentinels, or nil
}

//NewError returns an Error with the given message, caller and kind. kind should
//be one of the package sentinels, or nil.
func NewError(message, caller string, kind error) Error {
	return Error{message, []string{caller}, true, kind}
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if err.kind != nil {
		return err.kind.Error() + ": " + err.message
	}
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. If dec is empty, it just returns the current value.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//Unwrap returns the sentinel this error is a case of.
func (err Error) Unwrap() error { return err.kind }

//errDecorate adds the caller to the decoration of err, if err is an Error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		if caller != "" {
			e.deco = append(e.deco, caller)
		}
		return e
	}
	return err
}

//ErrDecorate is errDecorate for other packages of the library.
func ErrDecorate(err error, caller string) error {
	return errDecorate(err, caller)
}

// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package preview

import "fmt"

// DecodeModuleError reports that the document decoder failed to initialize.
// The failure is not cached; a later load attempt may succeed.
type DecodeModuleError struct {
	Err error
}

func (e *DecodeModuleError) Error() string {
	return fmt.Sprintf("decoder module load failed: %v", e.Err)
}

func (e *DecodeModuleError) Unwrap() error { return e.Err }

// FetchError reports a non-success status while retrieving the bytes for a
// source identifier.
type FetchError struct {
	SourceID string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.SourceID, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.SourceID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports that fetched bytes failed to parse into a document.
type DecodeError struct {
	SourceID string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.SourceID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RenderError reports that a page is missing or its draw call failed.
// A canvas handed out alongside a RenderError must not be treated as valid.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render page %d: %v", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

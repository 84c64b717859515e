// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package extract produces type facts from TypeScript source trees and
// from declarative YAML fact files.
//
// # Extraction Model
//
// The extractor is error-tolerant: syntactically invalid sources yield
// partial results with the problems recorded in Result.Errors rather than
// aborting the file. Hard failures (oversized input, invalid UTF-8,
// canceled context) are returned as errors.
//
// # Generic Binding
//
// Heritage arguments such as "class UserRepo extends Repository<User>"
// are recorded as HeritageRef values during extraction. Binding the
// arguments to the base type's declared parameters requires the base
// declaration, which may live in another file, so binding runs as a
// separate pass over the full fact set (see BindGenericArguments and
// Scanner).
//
// # Thread Safety
//
// Extractor instances are safe for concurrent use. Each Extract call
// creates its own tree-sitter parser internally.
package extract

import "errors"

// ErrFileTooLarge is returned when input content exceeds the maximum file size.
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// ErrInvalidContent is returned when input content is not valid UTF-8.
var ErrInvalidContent = errors.New("content is not valid UTF-8")

// ErrInvalidFactsFile is returned when a YAML facts file fails validation.
var ErrInvalidFactsFile = errors.New("invalid facts file")

// ErrWatcherClosed is returned when operations are attempted on a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

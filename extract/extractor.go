// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/AleutianAI/typefacts/facts"
)

const (
	// DefaultMaxFileSize is the maximum file size the extractor will accept (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize is the threshold at which a warning is logged (1MB).
	WarnFileSize = 1 * 1024 * 1024
)

// HeritageRef records a generic heritage reference observed during
// extraction, such as "class UserRepo extends Repository<User>".
//
// The reference carries the raw positional arguments; they are bound to
// the base type's declared parameters by BindGenericArguments once the
// base declaration is available.
type HeritageRef struct {
	// TypeName is the name of the declaring type.
	TypeName string `json:"type_name"`
	// Base is the referenced base type (superclass or interface).
	Base string `json:"base"`
	// Arguments are the concrete type arguments in declaration order.
	Arguments []string `json:"arguments"`
}

// Result holds the facts extracted from a single source file.
//
// A Result may be partial: syntax errors and skipped constructs are
// recorded in Errors while the remaining facts stay usable.
type Result struct {
	FilePath         string           `json:"file_path"`
	Language         string           `json:"language"`
	Hash             string           `json:"hash"`
	ExtractedAtMilli int64            `json:"extracted_at_milli"`
	Facts            []facts.TypeFact `json:"facts"`
	HeritageRefs     []HeritageRef    `json:"heritage_refs,omitempty"`
	Errors           []string         `json:"errors,omitempty"`
}

// ExtractorOption configures an Extractor instance.
type ExtractorOption func(*Extractor)

// WithMaxFileSize sets the maximum file size the extractor will accept.
//
// Parameters:
//   - bytes: Maximum file size in bytes. Must be positive.
//
// Example:
//
//	ex := NewExtractor(WithMaxFileSize(5 * 1024 * 1024)) // 5MB limit
func WithMaxFileSize(bytes int64) ExtractorOption {
	return func(e *Extractor) {
		if bytes > 0 {
			e.maxFileSize = bytes
		}
	}
}

// WithLibrary sets the library name stamped on every extracted fact.
// When unset, facts carry the source file path as their library.
func WithLibrary(name string) ExtractorOption {
	return func(e *Extractor) {
		e.library = name
	}
}

// Extractor produces TypeFact records from TypeScript source code.
//
// Description:
//
//	Extractor uses tree-sitter to parse TypeScript source files and
//	distill class and interface declarations into type facts: name,
//	superclass, implemented interfaces, applied mixins, type parameters,
//	methods, and properties. Mixin applications are recognized from
//	call-expression heritage ("extends Auditable(User)").
//
// Thread Safety:
//
//	Extractor instances are safe for concurrent use. Multiple goroutines
//	may call Extract simultaneously on the same Extractor instance.
//
// Example:
//
//	ex := NewExtractor()
//	result, err := ex.Extract(ctx, []byte("class Admin extends User {}"), "models.ts")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Facts {
//	    fmt.Printf("%s extends %s\n", f.Name, f.Superclass)
//	}
type Extractor struct {
	maxFileSize int64
	library     string
}

// NewExtractor creates a new Extractor with the given options.
//
// Outputs:
//   - *Extractor: Configured extractor instance, never nil
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		maxFileSize: DefaultMaxFileSize,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract produces type facts from TypeScript source code.
//
// Description:
//
//	Extract parses the provided source and walks top-level class,
//	abstract class, and interface declarations (including those wrapped
//	in export statements). The extractor is error-tolerant and returns
//	partial results for syntactically invalid code.
//
// Inputs:
//   - ctx: Context for cancellation. Checked before and after parsing.
//     Note: Tree-sitter parsing itself cannot be interrupted mid-parse.
//   - content: Raw TypeScript source code bytes. Must be valid UTF-8.
//   - filePath: Path to the file (for error reporting and the default
//     library name). Should use forward slashes.
//
// Outputs:
//   - *Result: Extracted facts and metadata. Never nil on success.
//     May contain partial results with errors for invalid code.
//   - error: Non-nil for complete failures:
//   - ErrFileTooLarge: Content exceeds the configured limit
//   - ErrInvalidContent: Content is not valid UTF-8
//   - Context errors: Context was canceled or timed out
//
// Thread Safety:
//
//	This method is safe for concurrent use.
func (e *Extractor) Extract(ctx context.Context, content []byte, filePath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract canceled before start: %w", err)
	}

	if int64(len(content)) > e.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), e.maxFileSize)
	}

	if len(content) > WarnFileSize {
		slog.Warn("extracting large file",
			slog.String("file", filePath),
			slog.Int("size_bytes", len(content)))
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContent, filePath)
	}

	hash := sha256.Sum256(content)

	// New parser instance per call for thread safety.
	parser := sitter.NewParser()
	if strings.HasSuffix(filePath, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	start := time.Now()
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()
	observeExtract(filePath, time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract canceled after tree-sitter: %w", err)
	}

	result := &Result{
		FilePath:         filePath,
		Language:         "typescript",
		Hash:             hex.EncodeToString(hash[:]),
		ExtractedAtMilli: time.Now().UnixMilli(),
		Facts:            make([]facts.TypeFact, 0),
		Errors:           make([]string, 0),
	}

	root := tree.RootNode()
	if root == nil {
		result.Errors = append(result.Errors, "tree-sitter returned nil root node")
		return result, nil
	}
	if root.HasError() {
		result.Errors = append(result.Errors, "source contains syntax errors")
	}

	e.walkDeclarations(root, content, result)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract canceled after extraction: %w", err)
	}

	return result, nil
}

// Language returns the canonical language name for this extractor.
func (e *Extractor) Language() string {
	return "typescript"
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".ts", ".tsx", ".mts", ".cts"}
}

// libraryFor resolves the library stamped on facts from this file.
func (e *Extractor) libraryFor(filePath string) string {
	if e.library != "" {
		return e.library
	}
	return filePath
}

// walkDeclarations visits top-level declarations, unwrapping export statements.
func (e *Extractor) walkDeclarations(root *sitter.Node, content []byte, result *Result) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case tsNodeExportStatement:
			for j := 0; j < int(child.ChildCount()); j++ {
				e.processDeclaration(child.Child(j), content, result)
			}
		default:
			e.processDeclaration(child, content, result)
		}
	}
}

func (e *Extractor) processDeclaration(node *sitter.Node, content []byte, result *Result) {
	switch node.Type() {
	case tsNodeClassDeclaration, tsNodeAbstractClassDeclaration:
		e.processClass(node, content, result)
	case tsNodeInterfaceDeclaration:
		e.processInterface(node, content, result)
	}
}

// processClass extracts a class declaration into a TypeFact.
func (e *Extractor) processClass(node *sitter.Node, content []byte, result *Result) {
	fact := facts.TypeFact{
		Library: e.libraryFor(result.FilePath),
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case tsNodeTypeIdentifier:
			fact.Name = string(content[child.StartByte():child.EndByte()])
		case tsNodeTypeParameters:
			fact.TypeParameters = e.extractTypeParameters(child, content)
		case tsNodeClassHeritage:
			e.extractClassHeritage(child, content, &fact, result)
		case tsNodeClassBody:
			e.extractClassMembers(child, content, &fact)
		}
	}

	if fact.Name == "" {
		line := int(node.StartPoint().Row + 1)
		result.Errors = append(result.Errors, fmt.Sprintf("anonymous class at line %d skipped", line))
		return
	}

	result.Facts = append(result.Facts, fact)
}

// processInterface extracts an interface declaration into a TypeFact.
// Parent interfaces from the extends clause land in Interfaces.
func (e *Extractor) processInterface(node *sitter.Node, content []byte, result *Result) {
	fact := facts.TypeFact{
		Library: e.libraryFor(result.FilePath),
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case tsNodeTypeIdentifier:
			fact.Name = string(content[child.StartByte():child.EndByte()])
		case tsNodeTypeParameters:
			fact.TypeParameters = e.extractTypeParameters(child, content)
		case tsNodeExtendsTypeClause:
			e.extractInterfaceHeritage(child, content, &fact, result)
		case tsNodeInterfaceBody, tsNodeObjectType:
			e.extractInterfaceMembers(child, content, &fact)
		}
	}

	if fact.Name == "" {
		line := int(node.StartPoint().Row + 1)
		result.Errors = append(result.Errors, fmt.Sprintf("anonymous interface at line %d skipped", line))
		return
	}

	result.Facts = append(result.Facts, fact)
}

// extractClassHeritage fills superclass, interfaces, and mixins from a
// class_heritage node.
func (e *Extractor) extractClassHeritage(node *sitter.Node, content []byte, fact *facts.TypeFact, result *Result) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case tsNodeExtendsClause:
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				switch gc.Type() {
				case tsNodeIdentifier, tsNodeTypeIdentifier:
					fact.Superclass = string(content[gc.StartByte():gc.EndByte()])
				case tsNodeGenericType:
					// The type name always precedes class_heritage in the
					// grammar, so fact.Name is set by the time we get here.
					base, args := e.splitGenericType(gc, content)
					fact.Superclass = base
					if len(args) > 0 {
						result.HeritageRefs = append(result.HeritageRefs, HeritageRef{TypeName: fact.Name, Base: base, Arguments: args})
					}
				case tsNodeTypeArguments:
					// "extends Base<Arg>" parses the expression and its type
					// arguments as siblings in the extends clause.
					if args := e.extractTypeArguments(gc, content); len(args) > 0 && fact.Superclass != "" {
						result.HeritageRefs = append(result.HeritageRefs, HeritageRef{TypeName: fact.Name, Base: fact.Superclass, Arguments: args})
					}
				case tsNodeCallExpression:
					e.resolveMixinChain(gc, content, fact)
				}
			}
		case tsNodeImplementsClause:
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				switch gc.Type() {
				case tsNodeTypeIdentifier:
					fact.Interfaces = append(fact.Interfaces, string(content[gc.StartByte():gc.EndByte()]))
				case tsNodeGenericType:
					base, args := e.splitGenericType(gc, content)
					fact.Interfaces = append(fact.Interfaces, base)
					if len(args) > 0 {
						result.HeritageRefs = append(result.HeritageRefs, HeritageRef{TypeName: fact.Name, Base: base, Arguments: args})
					}
				}
			}
		}
	}
}

// extractInterfaceHeritage fills parent interfaces from an extends_type_clause.
func (e *Extractor) extractInterfaceHeritage(node *sitter.Node, content []byte, fact *facts.TypeFact, result *Result) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case tsNodeTypeIdentifier:
			fact.Interfaces = append(fact.Interfaces, string(content[child.StartByte():child.EndByte()]))
		case tsNodeGenericType:
			base, args := e.splitGenericType(child, content)
			fact.Interfaces = append(fact.Interfaces, base)
			if len(args) > 0 {
				result.HeritageRefs = append(result.HeritageRefs, HeritageRef{TypeName: fact.Name, Base: base, Arguments: args})
			}
		}
	}
}

// resolveMixinChain unwinds call-expression heritage. Each call is a
// mixin application; the innermost plain identifier is the superclass:
//
//	class Admin extends Serializable(Auditable(User)) {}
//
// yields mixins [Serializable, Auditable] and superclass User.
func (e *Extractor) resolveMixinChain(node *sitter.Node, content []byte, fact *facts.TypeFact) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case tsNodeIdentifier:
			fact.Mixins = append(fact.Mixins, string(content[child.StartByte():child.EndByte()]))
		case tsNodeArguments:
			for j := 0; j < int(child.ChildCount()); j++ {
				arg := child.Child(j)
				switch arg.Type() {
				case tsNodeIdentifier:
					fact.Superclass = string(content[arg.StartByte():arg.EndByte()])
				case tsNodeCallExpression:
					e.resolveMixinChain(arg, content, fact)
				}
			}
		}
	}
}

// extractClassMembers fills methods and properties from a class body.
func (e *Extractor) extractClassMembers(body *sitter.Node, content []byte, fact *facts.TypeFact) {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case tsNodeMethodDefinition:
			if m, ok := e.extractMethod(child, content); ok {
				fact.Methods = append(fact.Methods, m)
			}
		case tsNodePublicFieldDefinition:
			if name := e.findChildText(child, content, tsNodePropertyIdentifier); name != "" {
				fact.Properties = append(fact.Properties, name)
			}
		}
	}
}

// extractInterfaceMembers fills methods and properties from an interface body.
func (e *Extractor) extractInterfaceMembers(body *sitter.Node, content []byte, fact *facts.TypeFact) {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case tsNodeMethodSignature:
			if m, ok := e.extractMethod(child, content); ok {
				fact.Methods = append(fact.Methods, m)
			}
		case tsNodePropertySignature:
			if name := e.findChildText(child, content, tsNodePropertyIdentifier); name != "" {
				fact.Properties = append(fact.Properties, name)
			}
		}
	}
}

// extractMethod builds a MethodFact from a method_definition or
// method_signature node.
func (e *Extractor) extractMethod(node *sitter.Node, content []byte) (facts.MethodFact, bool) {
	var m facts.MethodFact

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case tsNodeStatic:
			m.IsStatic = true
		case tsNodePropertyIdentifier:
			m.Name = string(content[child.StartByte():child.EndByte()])
		case tsNodeFormalParameters:
			m.ParameterTypes = e.extractParameterTypes(child, content)
		case tsNodeTypeAnnotation:
			m.ReturnType = e.extractTypeAnnotation(child, content)
		}
	}

	return m, m.Name != ""
}

// extractParameterTypes collects the annotated type of each parameter.
// Untyped parameters contribute "any".
func (e *Extractor) extractParameterTypes(node *sitter.Node, content []byte) []string {
	var types []string

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != tsNodeRequiredParameter && child.Type() != tsNodeOptionalParameter {
			continue
		}
		typ := "any"
		for j := 0; j < int(child.ChildCount()); j++ {
			if gc := child.Child(j); gc.Type() == tsNodeTypeAnnotation {
				typ = e.extractTypeAnnotation(gc, content)
			}
		}
		types = append(types, typ)
	}

	return types
}

// extractTypeParameters returns the bare parameter names from a
// type_parameters node, dropping constraints and defaults.
func (e *Extractor) extractTypeParameters(node *sitter.Node, content []byte) []string {
	params := make([]string, 0)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != tsNodeTypeParameter {
			continue
		}
		if name := e.findChildText(child, content, tsNodeTypeIdentifier); name != "" {
			params = append(params, name)
		}
	}

	return params
}

// extractTypeAnnotation extracts the type from a type annotation.
func (e *Extractor) extractTypeAnnotation(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != ":" {
			return string(content[child.StartByte():child.EndByte()])
		}
	}
	return ""
}

// splitGenericType decomposes a generic_type node into the base name and
// its raw type argument strings.
func (e *Extractor) splitGenericType(node *sitter.Node, content []byte) (string, []string) {
	var base string
	var args []string

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case tsNodeTypeIdentifier:
			base = string(content[child.StartByte():child.EndByte()])
		case tsNodeTypeArguments:
			args = e.extractTypeArguments(child, content)
		}
	}

	return base, args
}

// extractTypeArguments returns the raw argument strings from a
// type_arguments node, skipping punctuation.
func (e *Extractor) extractTypeArguments(node *sitter.Node, content []byte) []string {
	var args []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "<" || child.Type() == ">" || child.Type() == "," {
			continue
		}
		args = append(args, string(content[child.StartByte():child.EndByte()]))
	}
	return args
}

// findChildText returns the text of the first direct child of the given type.
func (e *Extractor) findChildText(node *sitter.Node, content []byte, nodeType string) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return string(content[child.StartByte():child.EndByte()])
		}
	}
	return ""
}

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

// TypeScript Tree-sitter Node Types
//
// This file documents the tree-sitter node types used by Extractor for type
// fact extraction. The extractor uses direct node traversal rather than
// tree-sitter's query language for more precise control over heritage
// handling.
//
// Reference: https://github.com/tree-sitter/tree-sitter-typescript

// Node type constants for TypeScript AST traversal.
const (
	// Declaration nodes
	tsNodeExportStatement          = "export_statement"
	tsNodeClassDeclaration         = "class_declaration"
	tsNodeAbstractClassDeclaration = "abstract_class_declaration"
	tsNodeInterfaceDeclaration     = "interface_declaration"

	// Class-related nodes
	tsNodeClassBody             = "class_body"
	tsNodeClassHeritage         = "class_heritage"
	tsNodeExtendsClause         = "extends_clause"
	tsNodeImplementsClause      = "implements_clause"
	tsNodeMethodDefinition      = "method_definition"
	tsNodePublicFieldDefinition = "public_field_definition"

	// Interface-related nodes
	tsNodeInterfaceBody     = "interface_body"
	tsNodeObjectType        = "object_type"
	tsNodeExtendsTypeClause = "extends_type_clause"
	tsNodePropertySignature = "property_signature"
	tsNodeMethodSignature   = "method_signature"

	// Type-related nodes
	tsNodeTypeParameters = "type_parameters"
	tsNodeTypeParameter  = "type_parameter"
	tsNodeTypeAnnotation = "type_annotation"
	tsNodeTypeIdentifier = "type_identifier"
	tsNodeGenericType    = "generic_type"
	tsNodeTypeArguments  = "type_arguments"

	// Function-related nodes
	tsNodeFormalParameters   = "formal_parameters"
	tsNodeRequiredParameter  = "required_parameter"
	tsNodeOptionalParameter  = "optional_parameter"
	tsNodePropertyIdentifier = "property_identifier"

	// Mixin heritage appears as a call expression in the extends clause:
	// class Admin extends Auditable(User) {}
	tsNodeCallExpression = "call_expression"
	tsNodeArguments      = "arguments"
	tsNodeIdentifier     = "identifier"

	// Modifier nodes
	tsNodeStatic = "static"
)

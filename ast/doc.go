// Package ast defines the typed tree produced by the Lex parser.
//
// A Document owns a root Session. Content nests through four typed
// containers, each restricting what it may hold:
//
//	SessionContainer   any SessionContent, sessions included
//	GeneralContainer   ContentElement only (no sessions)
//	ListContainer      *ListItem only
//	VerbatimContainer  *VerbatimLine only
//
// Every node carries a Range with both byte offsets and zero-based
// line/column positions. Annotatable nodes also hold the annotations the
// attachment pass moved onto them.
package ast

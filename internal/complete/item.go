// Package complete produces completion candidates, scope and member
// listings, and method call signatures from focused snapshots.
package complete

import (
	"jls/internal/frontend"
)

// ItemKind tags the completion item variants. Each variant carries its
// payload in a dedicated field of Item; consumers switch on the tag
// instead of probing interfaces.
type ItemKind int

const (
	// ItemElement is a resolved declaration: a variable, member, type
	// or package.
	ItemElement ItemKind = iota
	// ItemKeyword is a language keyword valid at the cursor.
	ItemKeyword
	// ItemPackagePart is the next segment of a package name.
	ItemPackagePart
	// ItemNotImportedClass is a class that would need an import to use.
	ItemNotImportedClass
	// ItemClassLiteral is the .class pseudo-member of a type qualifier.
	ItemClassLiteral
)

func (k ItemKind) String() string {
	switch k {
	case ItemElement:
		return "element"
	case ItemKeyword:
		return "keyword"
	case ItemPackagePart:
		return "package_part"
	case ItemNotImportedClass:
		return "not_imported_class"
	case ItemClassLiteral:
		return "class_literal"
	default:
		return "unknown"
	}
}

// Item is one completion candidate.
type Item struct {
	Kind ItemKind

	// Element is set for ItemElement.
	Element *frontend.Element
	// Label is set for ItemKeyword and ItemPackagePart.
	Label string
	// ClassName is the qualified name, set for ItemNotImportedClass.
	ClassName string
}

func elementItem(e *frontend.Element) Item {
	return Item{Kind: ItemElement, Element: e}
}

func keywordItem(word string) Item {
	return Item{Kind: ItemKeyword, Label: word}
}

func packagePartItem(segment string) Item {
	return Item{Kind: ItemPackagePart, Label: segment}
}

func notImportedItem(qualified string) Item {
	return Item{Kind: ItemNotImportedClass, ClassName: qualified}
}

// Result is a completion response. IsIncomplete reports that the
// catalog stream was cut off at the limit hint, so the client should
// re-query as the user keeps typing instead of filtering locally.
type Result struct {
	Items        []Item
	IsIncomplete bool
}

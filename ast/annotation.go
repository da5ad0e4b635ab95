package ast

import (
	"fmt"
	"strings"
)

// Label names an annotation, e.g. "note" in ":: note ::".
type Label struct {
	Value    string `json:"value"`
	Location Range  `json:"location"`
}

// Parameter is a key with an optional value. Quoted values keep their
// quotes.
type Parameter struct {
	Key      string `json:"key"`
	Value    string `json:"value,omitempty"`
	HasValue bool   `json:"has_value"`
	Location Range  `json:"location"`
}

func (p Parameter) String() string {
	if !p.HasValue {
		return p.Key
	}
	return p.Key + "=" + p.Value
}

// Unquoted returns the value without surrounding double quotes.
func (p Parameter) Unquoted() string {
	v := p.Value
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// Annotation is metadata: a label, parameters, and optional content. After
// the attachment pass it lives in the annotations slot of its target.
type Annotation struct {
	Label      Label
	Parameters []Parameter
	Children   GeneralContainer
	Location   Range
}

func NewAnnotation(label string, params []Parameter, children ...ContentElement) *Annotation {
	return &Annotation{
		Label:      Label{Value: label},
		Parameters: params,
		Children:   NewGeneralContainer(children...),
	}
}

func (a *Annotation) Type() NodeType  { return NodeAnnotation }
func (a *Annotation) Range() Range    { return a.Location }
func (a *Annotation) sessionContent() {}
func (a *Annotation) contentElement() {}

func (a *Annotation) Accept(v Visitor) {
	v.VisitAnnotation(a)
	for _, child := range a.Children.Items() {
		child.Accept(v)
	}
}

func (a *Annotation) String() string {
	if len(a.Parameters) == 0 {
		return fmt.Sprintf("Annotation %q", a.Label.Value)
	}
	params := make([]string, len(a.Parameters))
	for i, p := range a.Parameters {
		params[i] = p.String()
	}
	return fmt.Sprintf("Annotation %q [%s]", a.Label.Value, strings.Join(params, ", "))
}

// Parameter returns the first parameter named key.
func (a *Annotation) Parameter(key string) (Parameter, bool) {
	for _, p := range a.Parameters {
		if p.Key == key {
			return p, true
		}
	}
	return Parameter{}, false
}

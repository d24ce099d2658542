// Package hcl reads application definitions written in HCL and translates
// them into the format-agnostic `config.Model`, deriving the inverse
// dependency map from the variable traversals of every attribute.
//
// A definition is a sequence of one-label blocks, one per entity:
//
//	widget "Input1" {
//	  defaultText = Button1.text
//	  isValid     = Input1.text != "" || !Input1.isRequired
//	}
//
// The block type becomes the entity kind and the label its name.
package hcl

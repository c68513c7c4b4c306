// Package export renders architecture graphs into Infrastructure-as-Code
// text. The ModelExporter delegates code generation to the language
// model, feeding it the complete graph including per-component config
// bags, and returns the generated code with any markdown fencing
// stripped. Supported formats are Terraform, Bicep, and ARM.
package export

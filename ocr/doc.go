// Package ocr defines the contract for the text recognition collaborator
// that feeds the worksheet generator: one image in, recognized text out,
// with optional progress notifications while the engine works.
//
// A Tesseract-backed engine lives in the tesseract subpackage.
package ocr

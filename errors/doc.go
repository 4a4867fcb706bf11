// Package errors provides structured error types for the shim.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the legacy interface and method, the exported symbol,
// the real API status code and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTranslate, errors.KindTranslationGap).
//		Interface("IDirect3DDevice8").
//		Method("SetRenderState").
//		Path("D3DRS_LINEPATTERN").
//		Detail("state ignored").
//		Build()
//
// Or use convenience constructors for the shim's taxonomy:
//
//	err := errors.LoadFailure("dsound.dll", []string{"DirectSoundCreate8"}, nil)
//	err := errors.RealAPIFailure("IDirectSound8", "CreateSoundBuffer", hr)
//
// None of these errors crosses the binary interface. Entry points and proxy
// methods log them and return the legacy API's status code instead.
// All errors implement the standard error interface and support errors.Is/As.
package errors

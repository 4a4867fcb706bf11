// Package loader resolves the entry points of the real library behind a shim.
//
// Two sources are supported. ModeSystem loads a named binary (on Windows a
// bare name is looked up in the system directory only). ModeSelf resolves
// symbols, renamed with a prefix, from the module that hosts the shim.
//
//	surface, err := loader.Load(loader.Target{
//		Mode:     loader.ModeSystem,
//		Library:  "dsound.dll",
//		Required: []string{"DirectSoundCreate8"},
//		Optional: []string{"GetDeviceID"},
//	})
//
// A missing binary or required symbol produces a LoadFailure error naming
// every missing symbol. Shims keep running with a nil Surface and report
// the legacy API's "driver unavailable" status from their entry points.
package loader

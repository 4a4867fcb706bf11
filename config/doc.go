// Package config reads the shim options file.
//
// The file is INI formatted and lives beside the shim module as
// <module>.ini unless DXSHIM_CONFIG names another path:
//
//	[logging]
//	level = debug
//	trace_calls = true
//
//	[dsound]
//	loader = system
//	force_software_mixing = true
//	num_3d_buffers = 64
//
//	[d3d8]
//	library = d3d9.dll
//
// Options are read once per process. Normalize settles conflicting flags
// and reports what it changed so the host can log it.
package config

// Package dsound wraps a real dsound.dll behind proxies of the same
// interfaces.
//
// The real library is either the system copy or the hosting module under
// renamed exports (see loader.Mode). Every object the real library hands
// out (devices, buffers, 3D buffers, listeners, capture objects, full
// duplex objects and class factories) reaches the caller as a proxy whose
// method table matches the DirectSound ABI slot for slot. Most slots
// forward unchanged; the rest apply the tuning options from the [dsound]
// configuration section:
//
//	force_software_mixing / force_hardware_mixing / force_voice_management
//	force_non_static_buffers, force_hq_3d_soft_mixing
//	num_2d_buffers, num_3d_buffers, force_certification
//	force_exclusive_mode, prevent_speaker_setup, force_speaker_config
//	force_primary_buffer_format, stopped_driver_workaround
//
// When the real library cannot be loaded, creation entry points answer
// DSERR_NODRIVER and no proxy is created.
package dsound

// Package d3d8 implements the Direct3D 8 interfaces on top of a real
// Direct3D 9 library.
//
// Direct3DCreate8 creates an IDirect3D9 object and hands the caller an
// IDirect3D8 proxy for it. Every object reachable from there (devices,
// swap chains, textures, surfaces, volumes and buffers) is a proxy whose
// method table matches the Direct3D 8 ABI and whose real object is the
// Direct3D 9 counterpart. Calls are translated where the two versions
// disagree:
//
//   - present parameters, caps, adapter identifiers and resource
//     descriptions are converted in both directions
//   - the base vertex index moves from SetIndices to DrawIndexedPrimitive
//   - texture stage states that became sampler states are rerouted
//   - ZBIAS becomes DEPTHBIAS; states without a successor are dropped
//   - vertex shader handles stand for a declaration plus a shader whose
//     bytecode gets dcl instructions for the declared inputs
//   - CopyRects is split by memory pool across the version 9 copy calls
//
// Pixel shader, vertex shader and state block handles are small integers
// kept in a per-device table and released with the device. Direct3D 9
// results a version 8 caller does not know are reported through Status.
package d3d8

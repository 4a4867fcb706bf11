// Package lifetime bridges the two reference counts behind every proxy.
//
// A proxy's count is the one legacy callers see through AddRef and
// Release. The real object's count is touched once at each end of the
// proxy's life: the proxy is created owning exactly one real reference,
// and that reference is released when the proxy count reaches zero.
// Children obtained through a proxy get their own independent proxy.
//
// Counts are atomic; Release never underflows and the real release runs
// exactly once even when two threads race to zero.
package lifetime

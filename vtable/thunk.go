package vtable

import "fmt"

// maxArity is the widest legacy method handled (excluding this).
const maxArity = 10

// thunk adapts fn to a fixed-arity function that a Native can expose as a
// C callback. Each argument is one machine word.
func thunk(arity int, fn func(this uintptr, args []uintptr) uintptr) any {
	switch arity {
	case 0:
		return func(this uintptr) uintptr {
			return fn(this, nil)
		}
	case 1:
		return func(this, a0 uintptr) uintptr {
			return fn(this, []uintptr{a0})
		}
	case 2:
		return func(this, a0, a1 uintptr) uintptr {
			return fn(this, []uintptr{a0, a1})
		}
	case 3:
		return func(this, a0, a1, a2 uintptr) uintptr {
			return fn(this, []uintptr{a0, a1, a2})
		}
	case 4:
		return func(this, a0, a1, a2, a3 uintptr) uintptr {
			return fn(this, []uintptr{a0, a1, a2, a3})
		}
	case 5:
		return func(this, a0, a1, a2, a3, a4 uintptr) uintptr {
			return fn(this, []uintptr{a0, a1, a2, a3, a4})
		}
	case 6:
		return func(this, a0, a1, a2, a3, a4, a5 uintptr) uintptr {
			return fn(this, []uintptr{a0, a1, a2, a3, a4, a5})
		}
	case 7:
		return func(this, a0, a1, a2, a3, a4, a5, a6 uintptr) uintptr {
			return fn(this, []uintptr{a0, a1, a2, a3, a4, a5, a6})
		}
	case 8:
		return func(this, a0, a1, a2, a3, a4, a5, a6, a7 uintptr) uintptr {
			return fn(this, []uintptr{a0, a1, a2, a3, a4, a5, a6, a7})
		}
	case 9:
		return func(this, a0, a1, a2, a3, a4, a5, a6, a7, a8 uintptr) uintptr {
			return fn(this, []uintptr{a0, a1, a2, a3, a4, a5, a6, a7, a8})
		}
	case 10:
		return func(this, a0, a1, a2, a3, a4, a5, a6, a7, a8, a9 uintptr) uintptr {
			return fn(this, []uintptr{a0, a1, a2, a3, a4, a5, a6, a7, a8, a9})
		}
	}
	panic(fmt.Sprintf("vtable: arity %d exceeds %d", arity, maxArity))
}

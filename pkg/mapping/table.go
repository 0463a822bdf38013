package mapping

import (
	"github.com/tuffrabit/tinygo-nezoba/pkg/keys"
)

// Slots not listed in a row are None. Rows follow the Button order:
// left, down, right, up, X, Y, ZL, ZR, A, B, L, R, -, +, home.

// Table is the set of configurations selectable with the 4-bit switch.
// Configurations 11-15 are unassigned and map every button to nothing.
var Table = [NumConfigs]Config{
	// Index finger on run (Y), middle finger on jump (B); spin jump with
	// the thumb (L) or the ring finger (R). The lower row (X, A, ZR) works too.
	{
		Name: "SMM2 standard",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.Y)},
			{Plain(keys.B)},
			{Plain(keys.R)},
			{Plain(keys.ZL)},
			{Plain(keys.L)},
			{Plain(keys.X)},
			{Plain(keys.A)},
			{Plain(keys.ZR)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	// Middle finger holds run (Y), index finger jumps (B).
	{
		Name: "SMM2 run on middle",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.B)},
			{Plain(keys.Y)},
			{Plain(keys.R)},
			{Plain(keys.ZL)},
			{Plain(keys.L)},
			{Plain(keys.X)},
			{Plain(keys.A)},
			{Plain(keys.ZR)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	// Turbo run (X) and turbo jump (A) on the lower row; hold run (Y)
	// while firing with X.
	{
		Name: "SMM2 button mashing",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.Y)},
			{Plain(keys.B)},
			{Plain(keys.R)},
			{Plain(keys.L)},
			{Turbo(keys.X)},
			{Turbo(keys.A)},
			{Plain(keys.ZL)},
			{Plain(keys.ZR)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	// Like button mashing, with plain X and A kept for menus and L & R on
	// one button to start SMM2 without another controller.
	{
		Name: "SMM2 mashing with L & R",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.Y)},
			{Plain(keys.B)},
			{Plain(keys.L)},
			{Plain(keys.L), Plain(keys.R)},
			{Turbo(keys.X)},
			{Turbo(keys.A)},
			{Plain(keys.X)},
			{Plain(keys.A)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	// Super Mario World spins with A. ZL and ZR suspend the game in SNES online.
	{
		Name: "SMW standard",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.Y)},
			{Plain(keys.B)},
			{Plain(keys.A)},
			{Plain(keys.ZL)},
			{Plain(keys.A)},
			{Plain(keys.X)},
			{Plain(keys.B)},
			{Plain(keys.ZR)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	{
		Name: "NS plain",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.X)},
			{Plain(keys.Y)},
			{Plain(keys.ZL)},
			{Plain(keys.ZR)},
			{Plain(keys.A)},
			{Plain(keys.B)},
			{Plain(keys.L)},
			{Plain(keys.R)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	// PC arcade stick layout: Switch Y/X/B/A are PC X/Y/A/B.
	{
		Name: "PC plain",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.Y)},
			{Plain(keys.X)},
			{Plain(keys.ZL)},
			{Plain(keys.ZR)},
			{Plain(keys.B)},
			{Plain(keys.A)},
			{Plain(keys.L)},
			{Plain(keys.R)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	// SMW ROM hacks in an emulator, with an A & B "grab throwblock" combo.
	{
		Name: "PC kaizo",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.X)},
			{Plain(keys.A)},
			{Plain(keys.B), Plain(keys.A)},
			{Plain(keys.L)},
			{Plain(keys.B)},
			{Plain(keys.Y)},
			{Plain(keys.A)},
			{Plain(keys.B)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	// Index jumps (B), middle grabs (ZR), thumb or ring finger for powerups.
	{
		Name: "Levelhead standard",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.B)},
			{Plain(keys.ZR)},
			{Plain(keys.A)},
			{Plain(keys.L)},
			{Plain(keys.A)},
			{Plain(keys.X)},
			{Plain(keys.Y)},
			{Plain(keys.R)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	{
		Name: "Celeste standard",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.B)},
			{Plain(keys.Y)},
			{Plain(keys.ZL)},
			{Plain(keys.L)},
			{Plain(keys.A)},
			{Plain(keys.X)},
			{Plain(keys.A)},
			{Plain(keys.R)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	// Celeste standard plus climb up (L & up) and dash up (A & up).
	{
		Name: "Celeste with combos",
		Slots: [NumButtons][SlotsPerButton]Slot{
			{Plain(keys.DPadLeft)},
			{Plain(keys.DPadDown)},
			{Plain(keys.DPadRight)},
			{Plain(keys.DPadUp)},
			{Plain(keys.B)},
			{Plain(keys.Y)},
			{Plain(keys.ZL)},
			{Plain(keys.L), Plain(keys.DPadUp)},
			{Plain(keys.A), Plain(keys.DPadUp)},
			{Plain(keys.X)},
			{Plain(keys.A)},
			{Plain(keys.R)},
			{Plain(keys.Minus)},
			{Plain(keys.Plus)},
			{Plain(keys.Home)},
		},
	},
	{Name: "unassigned 11"},
	{Name: "unassigned 12"},
	{Name: "unassigned 13"},
	{Name: "unassigned 14"},
	{Name: "unassigned 15"},
}

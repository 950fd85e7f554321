// Package recipe loads mix recipes and runs them through the mixer.
//
// A recipe is a TOML file naming the channels to blend. Each channel is
// either a literal hex vector or a reference to a style inside a voice bank
// container or JSON document, plus a weight:
//
//	bus = 80
//	magnitude = 1.5
//	source = "bank.nofs"
//
//	[[channel]]
//	name = "soft"
//	style = "soft"
//	weight = 60
//
//	[[channel]]
//	name = "flat"
//	vector = "0000803F..."
//	weight = -40
//
// Relative source paths resolve against the recipe's directory. Run applies
// Mix, then ApplyBus, then SetMagnitude when a magnitude is given.
package recipe

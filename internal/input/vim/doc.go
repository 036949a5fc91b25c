// Package vim holds the vocabulary of the Vim normal-mode grammar: the
// operator set, count prefixes, and the tables that map keys onto motions,
// text objects and operators.
//
// The grammar itself is driven by the resolver in package input:
//
//	[count]["x][operator][count](motion|text-object)
//	[count]["x][operator][operator]   line-wise: dd, yy, >>
//	[count](motion)
//
// Examples:
//   - "5j": count=5, motion=j (move down 5 lines)
//   - "d3w": operator=d, count=3, motion=w (delete 3 words)
//   - "diw": operator=d, text-object=iw (delete inner word)
//   - `"ayw`: register=a, operator=y, motion=w
//   - "2d3w": pre and post operator counts multiply (delete 6 words)
//
// This package has no state beyond Count; everything else is a lookup.
package vim

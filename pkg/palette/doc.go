// Package palette defines the closed four-colour Mondrian palette.
//
// # Colours
//
// [Color] is a small enum with a fixed RGB constant per entry:
//
//   - [White]  #FFFFFF (background, zero value)
//   - [Blue]   #0000FF
//   - [Red]    #FF0000
//   - [Yellow] #FFD500
//
// # Weighted Selection
//
// [Random] turns a uniform sample in [0,1) into a colour. White carries 70%
// of the weight; red, blue and yellow 10% each:
//
//	c := palette.Random(rng.Float64())
//
// # Themes
//
// Renderers resolve colours through a [Theme]. [DefaultTheme] uses the fixed
// constants; [ThemeFromHex] re-skins individual entries from configuration:
//
//	theme, err := palette.ThemeFromHex(map[string]string{"yellow": "#F7D842"})
package palette

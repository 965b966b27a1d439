// Package errors provides coded, actionable errors for the kbcsite CLI.
//
// Library packages return plain wrapped errors and sentinels. The CLI maps
// them onto a SiteError at the boundary so the user sees a code, an
// explanation and a hint.
//
// # Error Categories
//
//   - config: kbc.json or KBC_ environment values
//   - content: the page content file
//   - server: serving failures
//   - render: static rendering
//   - publish: uploads to the bucket
//
// # Usage
//
//	err := errors.New("KBC011").
//	    WithLocationFromYAML("content.yaml", yamlErr).
//	    Wrap(yamlErr)
//
//	errors.PrintError(os.Stderr, err)
//	// ERROR KBC011: Content file not readable
//	//
//	//   content.yaml:12
//	//
//	//       10 │ hero:
//	//       11 │   slides:
//	//   →   12 │     - src /images/hero.jpg
//	//       13 │       alt: Hero
//	//
//	//   Hint: Leave content.path empty to use the built-in content.
package errors

// Package tailwind implements the flows that add Tailwind CSS to an Angular
// workspace and take it out again.
//
//   - ng-add declares the dev dependencies, schedules a package install, and
//     schedules ng-add-setup to run once the install has finished.
//   - ng-add-setup switches the build and serve targets to the custom-webpack
//     builders, references the Tailwind style file, and provisions tailwind/.
//   - ng-remove reverses all of the above.
//
// A user's existing customWebpackConfig is never overwritten or removed; the
// flows warn and leave the merge to a human instead.
package tailwind

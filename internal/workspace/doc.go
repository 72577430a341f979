// Package workspace resolves a project directory into the paths the generator
// works with. It provides the Context type that holds the source root, the
// manifest path and the optional cargows.yaml settings.
package workspace

// Copyright (c) 2020, the CP2K developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

/*
 * pkgspec models the Spack package specs the tool deals with. A spec is an
 * ordered sequence of typed tokens (package name, variant toggles, dependency
 * constraints, free-form feature tokens); ordering matters because Spack's
 * spec grammar is cumulative. Tokens are only joined into a string at the
 * subprocess-invocation boundary.
 */
package pkgspec

import "strings"

// BasePackage is the name of the package resolved for every variant
const BasePackage = "cp2k-deps"

// NoMPIFFTW disables the MPI side variant of the FFTW dependency. FFTW always
// builds the non-MPI libraries and adds a second set built with MPI on top;
// when the whole build is MPI-free that second set is useless.
const NoMPIFFTW = "^fftw~mpi"

// TokenKind identifies the role of a token within a spec
type TokenKind int

const (
	// KindPackage is the package name token
	KindPackage TokenKind = iota

	// KindToggle is a variant toggle token (+x or ~x)
	KindToggle

	// KindConstraint is a dependency constraint token (^...)
	KindConstraint

	// KindFeature is a free-form token forwarded verbatim to Spack
	KindFeature
)

// Token is one element of a Spack spec
type Token struct {
	Kind TokenKind
	Text string
}

// Package returns the package name token
func Package(name string) Token {
	return Token{Kind: KindPackage, Text: name}
}

// Toggle returns a variant toggle token, +name when enabled, ~name otherwise
func Toggle(name string, enabled bool) Token {
	if enabled {
		return Token{Kind: KindToggle, Text: "+" + name}
	}
	return Token{Kind: KindToggle, Text: "~" + name}
}

// Constraint returns a dependency constraint token
func Constraint(text string) Token {
	return Token{Kind: KindConstraint, Text: text}
}

// Feature returns a free-form passthrough token
func Feature(text string) Token {
	return Token{Kind: KindFeature, Text: text}
}

// Spec is an ordered Spack package spec
type Spec []Token

// Strings returns the spec as a slice of token texts, in order
func (s Spec) Strings() []string {
	texts := make([]string, 0, len(s))
	for _, tok := range s {
		texts = append(texts, tok.Text)
	}
	return texts
}

// String joins the spec into the form Spack consumes
func (s Spec) String() string {
	return strings.Join(s.Strings(), " ")
}

// Variant is one of the four fixed build configurations
type Variant struct {
	// Name is the conventional CP2K version name for the configuration
	Name string

	// OpenMP reports whether the variant enables OpenMP
	OpenMP bool

	// MPI reports whether the variant enables MPI
	MPI bool
}

// The four build variants. Sopt is always built, the others depend on what
// the operator requested.
var (
	Sopt = Variant{Name: "sopt", OpenMP: false, MPI: false}
	Ssmp = Variant{Name: "ssmp", OpenMP: true, MPI: false}
	Popt = Variant{Name: "popt", OpenMP: false, MPI: true}
	Psmp = Variant{Name: "psmp", OpenMP: true, MPI: true}
)

// Variants returns the variants to build for the requested OpenMP/MPI support,
// in build order
func Variants(omp bool, mpi bool) []Variant {
	variants := []Variant{Sopt}
	if omp {
		variants = append(variants, Ssmp)
	}
	if mpi {
		variants = append(variants, Popt)
	}
	if omp && mpi {
		variants = append(variants, Psmp)
	}
	return variants
}

// BuildConfig is the operator-requested build configuration, produced once
// from the command line and immutable afterwards
type BuildConfig struct {
	// OpenMP reports whether the OpenMP variants (ssmp/psmp) are requested
	OpenMP bool

	// MPI reports whether the MPI variants (popt/psmp) are requested
	MPI bool

	// Features is the list of free-form feature tokens to forward to Spack
	Features []string
}

// Variants returns the variants to build for this configuration
func (bc *BuildConfig) Variants() []Variant {
	return Variants(bc.OpenMP, bc.MPI)
}

// SpecFor computes the spec to install for one variant: package name, variant
// toggles, the operator's feature tokens, in that order. When MPI support is
// disabled for the overall build, the FFTW constraint is appended once at the
// end.
func (bc *BuildConfig) SpecFor(v Variant) Spec {
	spec := Spec{
		Package(BasePackage),
		Toggle("openmp", v.OpenMP),
		Toggle("mpi", v.MPI),
	}
	for _, f := range bc.Features {
		spec = append(spec, Feature(f))
	}
	if !bc.MPI {
		spec = append(spec, Constraint(NoMPIFFTW))
	}
	return spec
}

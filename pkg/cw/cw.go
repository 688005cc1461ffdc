// Package cw re-exports the cellforge core API for consumers outside the
// module, keeping the implementation packages under internal/ while
// exposing the construction surface: spaces and maps, cell attachment,
// skeletal assembly, closed-cover gluing, and homotopy extension.
package cw

import (
	"cellforge/internal/attach"
	"cellforge/internal/cover"
	"cellforge/internal/geom"
	"cellforge/internal/jar"
	"cellforge/internal/skeletal"
	"cellforge/internal/topology"
)

// Point-set layer.
type (
	Point     = topology.Point
	Space     = topology.Space
	Map       = topology.Map
	ClosedSet = topology.ClosedSet
	Iso       = topology.Iso
	Pair      = topology.Pair
)

var (
	NewSpace = topology.NewSpace
	NewMap   = topology.NewMap
	Identity = topology.Identity
	Empty    = topology.Empty
	Product  = topology.Product
	Equal    = topology.Equal
	AgreeOn  = topology.AgreeOn
)

// Geometric primitives.
type Vec = geom.Vec

var (
	Disk         = geom.Disk
	Sphere       = geom.Sphere
	Interval     = geom.Interval
	SphereToDisk = geom.SphereToDisk
)

// Attachment engine.
type (
	Cell          = attach.Cell
	Attachment    = attach.Attachment
	PushoutResult = attach.Result
	BasePoint     = attach.BasePoint
	CellPoint     = attach.CellPoint
)

var (
	Attach          = attach.Attach
	UniquenessCheck = attach.UniquenessCheck
)

// Skeletal assembler.
type (
	Complex    = skeletal.Complex
	Colimit    = skeletal.Colimit
	LevelPoint = skeletal.LevelPoint
	Provider   = skeletal.Provider
)

var NewComplex = skeletal.New

// Gluing engine.
type (
	Piece        = cover.Piece
	CoverWitness = cover.Witness
)

var Glue = cover.Glue

// Homotopy extension.
type (
	Extension       = jar.Extension
	BoundaryWitness = jar.BoundaryWitness
)

var (
	Extend    = jar.Extend
	VerifyHEP = jar.VerifyHEP
)

// Package geometry reads atomic structure files into a
// config.AtomicConfiguration: the plain .xyz format, the VASP POSCAR/
// CONTCAR format, and the simple whitespace-delimited .geo format.
//
// Grounded on original_source/src/geometry_reader.cpp; each format's
// reader is a direct translation of the corresponding read_xyz/
// read_poscar/read_geo method, replacing boost::split/regex with the
// standard library's strings/regexp/bufio equivalents the way the
// teacher's own file-backed loaders (builder package) parse plain text
// line by line with bufio.Scanner.
package geometry

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/lvlath-contrib/cna/config"
	"github.com/lvlath-contrib/cna/errs"
)

// ReadFile dispatches on filename's extension/prefix exactly as
// GeometryReader::read_file does: ".geo" files via ReadGeo, ".xyz" via
// ReadXYZ, and any file named POSCAR*/CONTCAR* via ReadPOSCAR (which
// always marks the configuration periodic).
func ReadFile(filename string) (*config.AtomicConfiguration, error) {
	const op = "geometry.ReadFile"
	base := filepath.Base(filename)
	ext := filepath.Ext(filename)

	switch {
	case ext == ".geo":
		return ReadGeo(filename)
	case ext == ".xyz":
		return ReadXYZ(filename)
	case strings.HasPrefix(base, "POSCAR") || strings.HasPrefix(base, "CONTCAR"):
		return ReadPOSCAR(filename)
	default:
		return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("unknown geometry file type: %s", filename))
	}
}

func readLines(op, filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errs.New(op, errs.Io, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.Join(strings.Fields(sc.Text()), " "))
	}
	if err := sc.Err(); err != nil {
		return nil, errs.New(op, errs.Io, err)
	}

	return lines, nil
}

// unitBoxCell builds the 5×-padded bounding-box cell read_geo/read_xyz
// construct for non-periodic structures: a diagonal cell sized to 5×
// the largest absolute coordinate along each axis.
func unitBoxCell(atoms []config.Atom) config.Cell {
	var max config.Vec3
	for _, a := range atoms {
		for d := 0; d < 3; d++ {
			v := a.Position[d]
			if v < 0 {
				v = -v
			}
			if v > max[d] {
				max[d] = v
			}
		}
	}

	var cell config.Cell
	for d := 0; d < 3; d++ {
		cell[d][d] = max[d] * 5
	}

	return cell
}

// ReadXYZ reads a plain .xyz file: atom count, a comment line, then one
// "element x y z" line per atom.
func ReadXYZ(filename string) (*config.AtomicConfiguration, error) {
	const op = "geometry.ReadXYZ"
	lines, err := readLines(op, filename)
	if err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: truncated xyz file", filename))
	}

	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: invalid atom count: %w", filename, err))
	}

	atoms := make([]config.Atom, 0, n)
	for i := 0; i < n && i+2 < len(lines); i++ {
		fields := strings.Fields(lines[i+2])
		if len(fields) < 4 {
			return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: malformed atom line %d", filename, i+2))
		}
		pos, err := parseVec3(fields[1], fields[2], fields[3])
		if err != nil {
			return nil, errs.New(op, errs.InvalidInput, err)
		}
		atoms = append(atoms, config.Atom{Element: fields[0], Position: pos})
	}

	return &config.AtomicConfiguration{Cell: unitBoxCell(atoms), Atoms: atoms, Periodic: false}, nil
}

// ReadGeo reads the .geo format: three header lines (title, cell label,
// blank/unused), followed by one "index element x y z" line per atom.
func ReadGeo(filename string) (*config.AtomicConfiguration, error) {
	const op = "geometry.ReadGeo"
	lines, err := readLines(op, filename)
	if err != nil {
		return nil, err
	}

	nrAtoms := -1
	for i := len(lines); i > 0; i-- {
		if lines[i-1] != "" {
			nrAtoms = i - 3
			break
		}
	}
	if nrAtoms <= 0 {
		return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: could not determine atom count", filename))
	}

	atoms := make([]config.Atom, 0, nrAtoms)
	for i := 0; i < nrAtoms; i++ {
		fields := strings.Fields(lines[i+3])
		if len(fields) < 5 {
			return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: malformed atom line %d", filename, i+3))
		}
		pos, err := parseVec3(fields[2], fields[3], fields[4])
		if err != nil {
			return nil, errs.New(op, errs.InvalidInput, err)
		}
		atoms = append(atoms, config.Atom{Element: fields[1], Position: pos})
	}

	return &config.AtomicConfiguration{Cell: unitBoxCell(atoms), Atoms: atoms, Periodic: false}, nil
}

var elementLineRegexp = regexp.MustCompile(`[A-Za-z]+`)
var selectiveDynamicsRegexp = regexp.MustCompile(`(?i)^\s*[sS]`)

// ReadPOSCAR reads a VASP5+ POSCAR/CONTCAR file: comment, scale factor,
// 3×3 lattice, element symbols, per-element counts, an optional
// "Selective dynamics" line, a Direct/Cartesian marker, then the atoms.
// The returned configuration is always periodic.
func ReadPOSCAR(filename string) (*config.AtomicConfiguration, error) {
	const op = "geometry.ReadPOSCAR"
	lines, err := readLines(op, filename)
	if err != nil {
		return nil, err
	}
	if len(lines) < 7 {
		return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: truncated POSCAR file", filename))
	}

	idx := 1
	scale, err := strconv.ParseFloat(lines[idx], 64)
	if err != nil {
		return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: invalid scale factor: %w", filename, err))
	}
	idx++

	var cell config.Cell
	for r := 0; r < 3; r++ {
		fields := strings.Fields(lines[idx])
		if len(fields) < 3 {
			return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: malformed lattice row %d", filename, r))
		}
		for c := 0; c < 3; c++ {
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, errs.New(op, errs.InvalidInput, err)
			}
			cell[r][c] = v * scale
		}
		idx++
	}

	if !elementLineRegexp.MatchString(lines[idx]) {
		return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: VASP4 POSCAR files (no element line) are not supported", filename))
	}
	elements := strings.Fields(lines[idx])
	idx++

	countFields := strings.Fields(lines[idx])
	if len(countFields) != len(elements) {
		return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: element count mismatch", filename))
	}
	counts := make([]int, len(countFields))
	for i, f := range countFields {
		c, err := strconv.Atoi(f)
		if err != nil {
			return nil, errs.New(op, errs.InvalidInput, err)
		}
		counts[i] = c
	}
	idx++

	if selectiveDynamicsRegexp.MatchString(lines[idx]) {
		idx++
	}

	direct := len(lines[idx]) > 0 && (lines[idx][0] == 'D' || lines[idx][0] == 'd')
	idx++

	var atoms []config.Atom
	for ei, elem := range elements {
		for a := 0; a < counts[ei]; a++ {
			if idx >= len(lines) {
				return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: truncated atom block", filename))
			}
			fields := strings.Fields(lines[idx])
			idx++
			if len(fields) < 3 {
				return nil, errs.New(op, errs.InvalidInput, fmt.Errorf("%s: malformed atom coordinate line", filename))
			}
			frac, err := parseVec3(fields[0], fields[1], fields[2])
			if err != nil {
				return nil, errs.New(op, errs.InvalidInput, err)
			}
			pos := frac
			if direct {
				pos = cell.TransformFractional(frac[0], frac[1], frac[2])
			}
			atoms = append(atoms, config.Atom{Element: elem, Position: pos})
		}
	}

	return &config.AtomicConfiguration{Cell: cell, Atoms: atoms, Periodic: true}, nil
}

func parseVec3(xs, ys, zs string) (config.Vec3, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return config.Vec3{}, err
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return config.Vec3{}, err
	}
	z, err := strconv.ParseFloat(zs, 64)
	if err != nil {
		return config.Vec3{}, err
	}

	return config.Vec3{x, y, z}, nil
}

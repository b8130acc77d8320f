/*
 * pmf.go, part of gocavity.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package statpot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/gocavity"
)

const (
	//BinWidth is the distance between two consecutive points of a PMF table.
	BinWidth = 0.1
	//MaxDistance is the largest distance a PMF table line can have.
	MaxDistance = 100.0
)

//PMF is a potential of mean force tabulated on distance bins of width BinWidth.
//Values[i] is the potential at distance i*BinWidth.
type PMF struct {
	Values []float64
}

//At returns the value of the table at distance d, and false if d is beyond the table.
func (p *PMF) At(d float64) (float64, bool) {
	if !(d >= 0) || d > MaxDistance {
		return 0, false
	}
	i := int(math.Floor(0.5 + d/BinWidth))
	if i < 0 || i >= len(p.Values) {
		return 0, false
	}
	return p.Values[i], true
}

//XY returns the distances and values of the table, for plotting.
func (p *PMF) XY() (xs, ys []float64) {
	xs = make([]float64, len(p.Values))
	ys = make([]float64, len(p.Values))
	for i, v := range p.Values {
		xs[i] = float64(i) * BinWidth
		ys[i] = v
	}
	return xs, ys
}

//ParsePMF reads a table with one distance-value pair per line. Empty lines and lines starting
//with '#' are ignored. Each value is put in the bin nearest to its distance; bins with no
//line are 0. Distances must be in [0, MaxDistance] and values finite.
func ParsePMF(r io.Reader) (*PMF, error) {
	p := &PMF{}
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		l := strings.TrimSpace(s.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		f := strings.Fields(l)
		if len(f) < 2 {
			return nil, chem.NewError(fmt.Sprintf("line %d: expected distance and value, got %q", line, l), "statpot.ParsePMF", chem.ErrShape)
		}
		d, err := strconv.ParseFloat(f[0], 64)
		if err != nil || !(d >= 0) || d > MaxDistance {
			return nil, chem.NewError(fmt.Sprintf("line %d: bad distance %q", line, f[0]), "statpot.ParsePMF", chem.ErrShape)
		}
		v, err := strconv.ParseFloat(f[1], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, chem.NewError(fmt.Sprintf("line %d: bad value %q", line, f[1]), "statpot.ParsePMF", chem.ErrShape)
		}
		i := int(math.Floor(0.5 + d/BinWidth))
		for len(p.Values) <= i {
			p.Values = append(p.Values, 0)
		}
		p.Values[i] = v
	}
	if err := s.Err(); err != nil {
		return nil, chem.NewError(err.Error(), "statpot.ParsePMF", nil)
	}
	if len(p.Values) == 0 {
		return nil, chem.NewError("empty table", "statpot.ParsePMF", chem.ErrMissingTable)
	}
	return p, nil
}

//TableLoader provides the PMF between atoms of type atomType and a probe of type probeType.
type TableLoader interface {
	Table(atomType, probeType string) (*PMF, error)
}

//DirTables loads tables from a directory. The table for atom type A and probe type P is
//read from Dir/P/A.pmf, or, if that file doesn't exist, from Dir/P/A.pmf.gz or Dir/P/A.pmf.zst.
type DirTables struct {
	Dir string
}

//Table loads the table for the given atom and probe types.
func (d DirTables) Table(atomType, probeType string) (*PMF, error) {
	base := filepath.Join(d.Dir, probeType, atomType+".pmf")
	for _, ext := range []string{"", ".gz", ".zst"} {
		p, err := readTable(base + ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, chem.ErrDecorate(err, "statpot.DirTables.Table")
		}
		return p, nil
	}
	return nil, chem.NewError(fmt.Sprintf("no table for %s-%s in %s", atomType, probeType, d.Dir), "statpot.DirTables.Table", chem.ErrMissingTable)
}

func readTable(name string) (*PMF, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	switch filepath.Ext(name) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, chem.NewError(fmt.Sprintf("%s: %v", name, err), "statpot.readTable", chem.ErrMissingTable)
		}
		defer gz.Close()
		r = gz
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, chem.NewError(fmt.Sprintf("%s: %v", name, err), "statpot.readTable", chem.ErrMissingTable)
		}
		defer zr.Close()
		r = zr
	}
	p, err := ParsePMF(r)
	if err != nil {
		return nil, chem.ErrDecorate(err, name)
	}
	return p, nil
}

//MapTables is a TableLoader backed by a map keyed by "atomType/probeType".
type MapTables map[string]*PMF

//Table returns the table for the given atom and probe types.
func (m MapTables) Table(atomType, probeType string) (*PMF, error) {
	p, ok := m[atomType+"/"+probeType]
	if !ok {
		return nil, chem.NewError(fmt.Sprintf("no table for %s-%s", atomType, probeType), "statpot.MapTables.Table", chem.ErrMissingTable)
	}
	return p, nil
}

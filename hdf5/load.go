package hdf5

import (
	"github.com/PrincetonUniversity/boids"
	"github.com/pkg/errors"
	"gonum.org/v1/hdf5"
)

// A Loader sequentially loads frames recorded by BoidsDataset.
type Loader struct {
	i uint // index of current frame
	n uint // total number of frames

	data []DataPoint // data buffer

	file   *hdf5.File
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// NewLoader opens a dataset in an HDF5 file and returns an initialized loader.
func NewLoader(filepath, dataset string) (*Loader, error) {
	l := new(Loader)
	var err error
	l.file, err = hdf5.OpenFile(filepath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: open %s", filepath)
	}
	l.dset, err = l.file.OpenDataset(dataset)
	if err != nil {
		checkClose(&err, l.file)
		return nil, errors.Wrapf(err, "loader: open dataset %q", dataset)
	}
	l.fspace = l.dset.Space()
	dims, _, err := l.fspace.SimpleExtentDims()
	if err != nil {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}
	if len(dims) != 2 || dims[0] == 0 {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, errors.Errorf("loader: expected 2 non-empty dimensions, got %v", dims)
	}
	l.n = dims[0]

	l.mspace, err = hdf5.CreateSimpleDataspace(dims[1:], nil)
	if err != nil {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}

	start := []uint{0, 0}
	count := []uint{1, dims[1]}
	if err := l.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		l.Close()
		return nil, err
	}

	l.data = make([]DataPoint, dims[1])

	return l, nil
}

// Frames returns the number of recorded frames.
func (l *Loader) Frames() int {
	return int(l.n)
}

// Load loads the next frame into s
// and cycles when everything has already been loaded.
func (l *Loader) Load(s *[]boids.Boid) error {
	start := []uint{l.i, 0}
	if err := l.fspace.SetOffset(start); err != nil {
		return err
	}
	l.i = (l.i + 1) % l.n

	if err := l.dset.ReadSubset(&l.data, l.mspace, l.fspace); err != nil {
		return errors.Wrap(err, "loader: read frame")
	}

	*s = (*s)[:0]
	for _, p := range l.data {
		*s = append(*s, boids.Boid{Pos: p.Pos, Vel: p.Vel, Size: p.Size})
	}
	return nil
}

// Close releases the HDF5 resources held by the loader.
func (l *Loader) Close() (err error) {
	defer checkClose(&err, l.file)
	defer checkClose(&err, l.dset)
	defer checkClose(&err, l.fspace)
	return l.mspace.Close()
}

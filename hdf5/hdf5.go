// Package hdf5 records boids simulations to HDF5 files and reads them back.
package hdf5

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/PrincetonUniversity/boids"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/hdf5"
)

// A Dataset stipulates how to generate data and where to store them in the HDF5 file.
type Dataset struct {
	// Name the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single step.
	Dims []int

	// Data is a function that produces the data
	// as a pointer to a slice of row-major concrete values,
	// or a pointer to a single value if Dims is empty.
	Data func(s *boids.Simulation) interface{}

	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// Config holds the parameters of the HDF5 driver.
type Config struct {
	Output   string       // path of output file
	Steps    int          // total number of steps
	Step     func() error // go to next step
	RunID    uuid.UUID    // identifier of the run, saved with the config
	Params   interface{}  // pointer to a struct whose fields are saved as attributes
	Datasets []*Dataset   // list of datasets
	Log      *zap.Logger  // progress reports, may be nil
}

// Run runs a simulation and saves data to an HDF5 file.
// Row k of every dataset holds the state before step k.
func Run(s *boids.Simulation, conf *Config) (err error) {
	log := conf.Log
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return errors.Wrap(err, "hdf5: create output directory")
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return errors.Wrapf(err, "hdf5: create %s", conf.Output)
	}
	defer checkClose(&err, file)

	if err := saveConfig(file, conf); err != nil {
		return errors.Wrap(err, "hdf5: save config")
	}

	for _, d := range conf.Datasets {
		if err := d.init(file, conf); err != nil {
			return errors.Wrapf(err, "hdf5: create dataset %q", d.Name)
		}
		defer checkClose(&err, d)
	}

	log.Info("recording",
		zap.String("output", conf.Output),
		zap.Stringer("run", conf.RunID),
		zap.Int("steps", conf.Steps),
	)
	progress := -1
	for k := uint(0); k < uint(conf.Steps); k++ {
		// show progress every 10%
		if p := int(10 * k / uint(conf.Steps)); p != progress {
			progress = p
			log.Info("progress", zap.Int("percent", 10*p), zap.Uint("step", k))
		}

		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.fspace.SetOffset(start); err != nil {
				return err
			}
			if err := d.dset.WriteSubset(d.Data(s), d.mspace, d.fspace); err != nil {
				return errors.Wrapf(err, "hdf5: write %q at step %d", d.Name, k)
			}
		}

		if err := conf.Step(); err != nil {
			return errors.Wrapf(err, "hdf5: step %d", k)
		}
	}
	log.Info("progress", zap.Int("percent", 100), zap.Int("step", conf.Steps))
	return nil
}

// A DataPoint is what is recorded in the HDF5 file for each boid at each step.
// This structure is mapped to a compound datatype in HDF5 so member names are important.
type DataPoint struct {
	Pos   r2.Vec // position
	Vel   r2.Vec // velocity
	Size  r2.Vec // visual extent
	Group int64  // index of the group that contains the boid
}

// BoidsDataset records every boid of a swarm of size n,
// grouping together boids closer than maxGroupDist.
func BoidsDataset(name string, n int, maxGroupDist float64) *Dataset {
	return &Dataset{
		Name: name,
		Val:  DataPoint{},
		Dims: []int{n},
		Data: func(s *boids.Simulation) interface{} {
			p := Points(s.Swarm, maxGroupDist)
			return &p
		},
	}
}

// PolarizationDataset records the polarization of the swarm.
func PolarizationDataset(name string) *Dataset {
	return &Dataset{
		Name: name,
		Val:  0.0,
		Data: func(s *boids.Simulation) interface{} {
			v := boids.Polarization(s.Swarm)
			return &v
		},
	}
}

// Points converts a swarm to data points.
func Points(swarm []boids.Boid, maxGroupDist float64) []DataPoint {
	groups := boids.Groups(swarm, maxGroupDist)
	p := make([]DataPoint, len(swarm))
	for i, b := range swarm {
		p[i] = DataPoint{Pos: b.Pos, Vel: b.Vel, Size: b.Size, Group: int64(groups[i])}
	}
	return p
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// reflect the whole configuration plus some other appropriate metadata.
func saveConfig(file *hdf5.File, conf *Config) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, scalar)

	now := time.Now().String()
	if err := writeAttr(dset, scalar, "Time", &now); err != nil {
		return err
	}
	run := conf.RunID.String()
	if err := writeAttr(dset, scalar, "RunID", &run); err != nil {
		return err
	}

	if conf.Params == nil {
		return nil
	}
	v := reflect.Indirect(reflect.ValueOf(conf.Params))
	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)
		if !f.IsExported() {
			continue
		}
		val := reflect.New(f.Type)
		val.Elem().Set(v.Field(i))
		if err := writeAttr(dset, scalar, f.Name, val.Interface()); err != nil {
			return errors.Wrapf(err, "attribute %s", f.Name)
		}
	}
	return nil
}

// writeAttr writes the value pointed to by ptr as a scalar attribute of dset.
func writeAttr(dset *hdf5.Dataset, scalar *hdf5.Dataspace, name string, ptr interface{}) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(reflect.ValueOf(ptr).Elem().Interface())
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	attr, err := dset.CreateAttribute(name, dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	return attr.Write(ptr, dtype)
}

// init creates the dataset and its dataspaces in file.
func (d *Dataset) init(file *hdf5.File, conf *Config) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = uint(conf.Steps)
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	d.dset, err = file.CreateDataset(d.Name, dtype, d.fspace)
	if err != nil {
		checkClose(&err, d.fspace)
		checkClose(&err, d.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and Dataspaces.
func (d *Dataset) Close() error {
	if err := d.dset.Close(); err != nil {
		return err
	}
	if err := d.mspace.Close(); err != nil {
		return err
	}
	if err := d.fspace.Close(); err != nil {
		return err
	}
	return nil
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}

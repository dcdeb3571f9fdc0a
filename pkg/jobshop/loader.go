package jobshop

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"

	"github.com/srand/shopsched/pkg/log"
	"github.com/srand/shopsched/pkg/utils"
)

// Load an instance from a file.
// Files with a .gz suffix are decompressed transparently.
func Load(fs afero.Fs, path string) (*Instance, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file

	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", utils.ErrParse, path, err)
		}
		defer zr.Close()
		reader = zr
	}

	inst, err := Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debugf("new - instance - file: %s, jobs: %d, machines: %d",
		path, len(inst.Jobs), inst.Machines)

	return inst, nil
}

// Parse an instance in the JSPLIB text format:
// a header line with the job and machine counts, followed by one line
// per job holding machine/duration pairs, one pair per stage.
// Blank lines and lines starting with '#' are skipped.
// The instance is validated before it is returned.
func Parse(reader io.Reader) (*Instance, error) {
	scanner := bufio.NewScanner(reader)

	fields, err := nextLine(scanner)
	if err != nil {
		return nil, err
	}
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: expected header with job and machine counts", utils.ErrParse)
	}

	jobCount, err := parseInt(fields[0])
	if err != nil {
		return nil, err
	}
	machineCount, err := parseInt(fields[1])
	if err != nil {
		return nil, err
	}
	if jobCount < 1 || machineCount < 1 {
		return nil, fmt.Errorf("%w: %d jobs on %d machines", utils.ErrMalformedInstance, jobCount, machineCount)
	}

	inst := &Instance{
		Machines: machineCount,
		Jobs:     make([]*Job, 0, jobCount),
	}

	for id := 0; id < jobCount; id++ {
		fields, err := nextLine(scanner)
		if err != nil {
			return nil, err
		}
		if len(fields)%2 != 0 {
			return nil, fmt.Errorf("%w: job %d: odd number of values", utils.ErrParse, id)
		}

		job := &Job{
			ID:  id,
			Ops: make([]Operation, 0, len(fields)/2),
		}

		for i := 0; i < len(fields); i += 2 {
			machine, err := parseInt(fields[i])
			if err != nil {
				return nil, err
			}
			duration, err := parseInt(fields[i+1])
			if err != nil {
				return nil, err
			}

			job.Ops = append(job.Ops, Operation{
				Machine:       machine,
				Duration:      duration,
				Stage:         i / 2,
				ScheduledTime: -1,
			})
		}

		inst.Jobs = append(inst.Jobs, job)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}

	return inst, nil
}

// Returns the fields of the next line with content.
func nextLine(scanner *bufio.Scanner) ([]string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), nil
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: unexpected end of file", utils.ErrParse)
}

func parseInt(field string) (int, error) {
	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: not a number: %q", utils.ErrParse, field)
	}
	return value, nil
}

package ftag

import (
	"strings"

	"flatrec/ds"
	"flatrec/flat/fdiag"
	"flatrec/flat/frecord"
	"flatrec/flat/fschema"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	// Registry maps record type tags to their schemas, so that identity strings can
	// be turned back into records.
	Registry struct {
		schemas  *ds.LinkedHashMap[string, *fschema.Schema]
		decoders map[string]*frecord.Decoder
		diag     *fdiag.Log
	}
	// Parsed groups reconstructed records by tag, in registration order.
	Parsed struct {
		Groups   *ds.LinkedHashMap[string, []*frecord.Record]
		Failures []error
	}
)

func NewRegistry(diag *fdiag.Log) *Registry {
	if diag == nil {
		diag = fdiag.New()
	}
	return &Registry{
		schemas:  ds.NewLinkedHashMap[string, *fschema.Schema](),
		decoders: map[string]*frecord.Decoder{},
		diag:     diag,
	}
}

// Register adds schemas under their tags. Tags must be non-empty, unique and free
// of the identity separator.
func (r *Registry) Register(schemas ...*fschema.Schema) error {
	for _, schema := range schemas {
		tag := schema.Tag()
		if strings.TrimSpace(tag) == "" {
			return errors.Wrap(ErrInvalidTag, "Register error: empty tag")
		}
		if strings.Contains(tag, frecord.IdentitySeparator) {
			return errors.Wrapf(ErrInvalidTag, `Register error: tag "%s" contains "%s"`, tag, frecord.IdentitySeparator)
		}
		if _, ok := r.schemas.Get(tag); ok {
			return errors.Wrapf(ErrInvalidTag, `Register error: tag "%s" is already registered`, tag)
		}
		r.schemas.Put(tag, schema)
		r.decoders[tag] = frecord.NewDecoder(schema, frecord.WithDiagnostics(r.diag))
	}
	return nil
}

func (r *Registry) Tags() []string {
	return r.schemas.Keys()
}

func (r *Registry) Schema(tag string) (*fschema.Schema, error) {
	schema, ok := r.schemas.Get(tag)
	if !ok {
		return nil, UnknownTagError{Tag: tag}
	}
	return schema, nil
}

func (r *Registry) Diagnostics() *fdiag.Log {
	return r.diag
}

// Reconstruct decodes an identity string with the schema registered for its tag.
func (r *Registry) Reconstruct(identity string) (*frecord.Record, error) {
	tag, line, err := split(identity)
	if err != nil {
		return nil, errors.Wrap(err, "Reconstruct error")
	}
	decoder, ok := r.decoders[tag]
	if !ok {
		return nil, errors.Wrap(UnknownTagError{Tag: tag}, "Reconstruct error")
	}
	return decoder.Decode(line, 0)
}

// ReconstructWith decodes an identity string with the schema of tag, reading the
// line with delimiter instead of the schema's own.
func (r *Registry) ReconstructWith(tag string, delimiter string, identity string) (*frecord.Record, error) {
	schema, err := r.Schema(tag)
	if err != nil {
		return nil, errors.Wrap(err, "ReconstructWith error")
	}
	identityTag, line, err := split(identity)
	if err != nil {
		return nil, errors.Wrap(err, "ReconstructWith error")
	}
	if identityTag != tag {
		return nil, errors.Wrapf(ErrMalformedIdentity, `ReconstructWith error: identity tag "%s" is not "%s"`, identityTag, tag)
	}

	decoder := r.decoders[tag]
	if delimiter != "" && delimiter != schema.Delimiter() {
		clone := schema.Clone()
		clone.SetDelimiter(delimiter)
		decoder = frecord.NewDecoder(clone, frecord.WithDiagnostics(r.diag))
	}
	return decoder.Decode(line, 0)
}

// ParseAll reconstructs every identity and groups the records by tag. Each tag is
// decoded as one batch; ordinals are positions in identities starting at 1.
func (r *Registry) ParseAll(identities []string) Parsed {
	parsed := Parsed{
		Groups:   ds.NewLinkedHashMap[string, []*frecord.Record](),
		Failures: []error{},
	}
	linesByTag := map[string][]frecord.Line{}
	for _, tag := range r.Tags() {
		parsed.Groups.Put(tag, []*frecord.Record{})
	}

	for i, identity := range identities {
		ordinal := i + 1
		tag, line, err := split(identity)
		if err == nil {
			if _, ok := r.decoders[tag]; !ok {
				err = UnknownTagError{Tag: tag}
			}
		}
		if err != nil {
			r.diag.Err(fdiag.Entry{Ordinal: ordinal, Err: err})
			parsed.Failures = append(parsed.Failures, frecord.DecodeError{Ordinal: ordinal, Line: identity, Err: err})
			continue
		}
		linesByTag[tag] = append(linesByTag[tag], frecord.Line{Ordinal: ordinal, Text: line})
	}

	for _, tag := range r.Tags() {
		lines, ok := linesByTag[tag]
		if !ok {
			continue
		}
		batch := r.decoders[tag].DecodeLines(lines)
		parsed.Groups.Put(tag, batch.Records)
		parsed.Failures = append(parsed.Failures, lo.Map(batch.Failures, func(failure frecord.DecodeError, _ int) error {
			return failure
		})...)
	}
	return parsed
}

// Records returns the records parsed for tag.
func (r Parsed) Records(tag string) []*frecord.Record {
	records, _ := r.Groups.Get(tag)
	return records
}

func split(identity string) (string, string, error) {
	tag, line, ok := frecord.SplitIdentity(identity)
	if !ok || tag == "" {
		return "", "", errors.Wrapf(ErrMalformedIdentity, `no tag in "%s"`, identity)
	}
	return tag, line, nil
}

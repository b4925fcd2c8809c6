package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

const defaultConcurrency = 4

// SchemaDiffer pairs source and target objects by identity and classifies each pairing.
// It keeps no state between calls; every call re-reads both catalogs.
type SchemaDiffer struct {
	registry    *ComparerRegistry
	matcher     ports.Matcher
	logger      ports.Logger
	concurrency int
	filter      Filter
}

func NewSchemaDiffer(
	registry *ComparerRegistry,
	matcher ports.Matcher,
	logger ports.Logger,
	concurrency int,
	filter Filter,
) (*SchemaDiffer, error) {
	if registry == nil {
		return nil, errors.New(errors.CodeConfigValidation, "comparer registry cannot be nil")
	}
	if matcher == nil {
		return nil, errors.New(errors.CodeConfigValidation, "matcher cannot be nil")
	}
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil")
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &SchemaDiffer{
		registry:    registry,
		matcher:     matcher,
		logger:      logger,
		concurrency: concurrency,
		filter:      filter,
	}, nil
}

// CompareSchemas returns one or more results per object pairing, ordered as:
// matched pairs and source-only objects in source enumeration order, then
// target-only objects in target order. The order is stable across runs
// against unchanged catalogs.
func (d *SchemaDiffer) CompareSchemas(ctx context.Context, source, target ports.Catalog) ([]domain.ComparisonResult, error) {
	if source == nil || target == nil {
		return nil, errors.New(errors.CodeInternal, "source and target catalogs are required")
	}
	d.logger.Infof(ctx, "Comparing schema objects of %s against %s", source.Name(), target.Name())

	sourceObjs, targetObjs, err := d.listBoth(ctx, source, target)
	if err != nil {
		return nil, err
	}

	match, err := d.matcher.Match(ctx, sourceObjs, targetObjs)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeMatchingError, "object matching failed")
	}
	d.logger.Debugf(ctx, "Matching complete: %d matched, %d to create, %d to drop",
		len(match.Matched), len(match.OnlyInSource), len(match.OnlyInTarget))

	// One slot per pairing keeps the output order independent of worker scheduling.
	slots := make([][]domain.ComparisonResult, 0, len(match.Matched)+len(match.OnlyInSource)+len(match.OnlyInTarget))
	var tasks []func(context.Context) []domain.ComparisonResult

	for _, pair := range match.Matched {
		pair := pair
		tasks = append(tasks, func(ctx context.Context) []domain.ComparisonResult {
			return d.comparePair(ctx, source, target, pair)
		})
	}
	for _, obj := range match.OnlyInSource {
		obj := obj
		tasks = append(tasks, func(ctx context.Context) []domain.ComparisonResult {
			return []domain.ComparisonResult{d.oneSided(ctx, source, obj, domain.ActionCreate)}
		})
	}
	for _, obj := range match.OnlyInTarget {
		obj := obj
		tasks = append(tasks, func(ctx context.Context) []domain.ComparisonResult {
			return []domain.ComparisonResult{d.oneSided(ctx, target, obj, domain.ActionDrop)}
		})
	}
	slots = slots[:len(tasks)]

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			slots[i] = task(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		d.logger.Warnf(ctx, "Schema comparison cancelled: %v", err)
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	results := make([]domain.ComparisonResult, 0, len(slots))
	for _, s := range slots {
		results = append(results, s...)
	}
	d.logger.Infof(ctx, "Schema comparison produced %d results", len(results))
	return results, nil
}

func (d *SchemaDiffer) listBoth(ctx context.Context, source, target ports.Catalog) ([]domain.SchemaObject, []domain.SchemaObject, error) {
	var sourceObjs, targetObjs []domain.SchemaObject

	g, gctx := errgroup.WithContext(ctx)
	list := func(cat ports.Catalog, out *[]domain.SchemaObject) func() error {
		return func() error {
			objs, err := cat.ListObjects(gctx)
			if err != nil {
				wrapped := errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("listing objects on %s", cat.Name()))
				d.logger.Errorf(gctx, wrapped, "Object enumeration failed")
				return wrapped
			}
			*out = d.filter.apply(objs)
			d.logger.Debugf(gctx, "Listed %d objects on %s (%d after filtering)", len(objs), cat.Name(), len(*out))
			return nil
		}
	}
	g.Go(list(source, &sourceObjs))
	g.Go(list(target, &targetObjs))

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sourceObjs, targetObjs, nil
}

func (d *SchemaDiffer) comparePair(ctx context.Context, source, target ports.Catalog, pair ports.MatchedPair) []domain.ComparisonResult {
	obj := pair.Source
	log := d.logger.WithFields(map[string]any{
		"object":      obj.Identity().String(),
		"object_type": obj.Type.String(),
	})

	if pair.Source.TypeCode != pair.Target.TypeCode {
		log.Debugf(ctx, "Type mismatch: %s on source, %s on target", pair.Source.TypeCode, pair.Target.TypeCode)
		return []domain.ComparisonResult{{
			Identity:       obj.Identity(),
			ObjectType:     obj.Type,
			TypeCode:       obj.TypeCode,
			Action:         domain.ActionDifferent,
			DifferenceKind: domain.DiffTypeMismatch,
			SourceDetail:   &domain.ObjectDetail{TypeCode: pair.Source.TypeCode},
			TargetDetail:   &domain.ObjectDetail{TypeCode: pair.Target.TypeCode},
		}}
	}

	comparer, err := d.registry.Get(obj.Type)
	if err != nil {
		log.Errorf(ctx, err, "No comparer for object type")
		return []domain.ComparisonResult{errorResult(obj, err)}
	}

	results, err := comparer.Compare(ctx, source, pair.Source, target, pair.Target)
	if err != nil {
		log.Errorf(ctx, err, "Comparison failed")
		return []domain.ComparisonResult{errorResult(obj, err)}
	}
	if len(results) == 0 {
		err := errors.New(errors.CodeComparisonError, fmt.Sprintf("comparer produced no result for %s", obj.Identity()))
		log.Errorf(ctx, err, "Comparison incomplete")
		return []domain.ComparisonResult{errorResult(obj, err)}
	}

	for i := range results {
		if results[i].Action == domain.ActionDifferent && results[i].DifferenceKind == domain.DiffNone {
			err := errors.New(errors.CodeComparisonError, fmt.Sprintf("different result for %s carries no difference kind", obj.Identity()))
			log.Errorf(ctx, err, "Comparer violated result contract")
			results[i] = errorResult(obj, err)
			continue
		}
		if results[i].Action == domain.ActionDifferent {
			log.Debugf(ctx, "Difference detected: %s", results[i].DifferenceKind)
		}
	}
	return results
}

// oneSided reports an object present on one side only. When its detail cannot
// be read the result keeps its action and carries the error.
func (d *SchemaDiffer) oneSided(ctx context.Context, catalog ports.Catalog, obj domain.SchemaObject, action domain.Action) domain.ComparisonResult {
	res := domain.ComparisonResult{
		Identity:   obj.Identity(),
		ObjectType: obj.Type,
		TypeCode:   obj.TypeCode,
		Action:     action,
	}

	comparer, err := d.registry.Get(obj.Type)
	if err != nil {
		d.logger.Errorf(ctx, err, "No comparer for %s %s", obj.Type, obj.Identity())
		return errorResult(obj, err)
	}

	detail, err := comparer.Describe(ctx, catalog, obj)
	if err != nil {
		d.logger.Errorf(ctx, err, "Failed to describe %s %s on %s", obj.Type, obj.Identity(), catalog.Name())
		res.Error = err
		return res
	}
	if action == domain.ActionCreate {
		res.SourceDetail = detail
	} else {
		res.TargetDetail = detail
	}
	return res
}

func errorResult(obj domain.SchemaObject, err error) domain.ComparisonResult {
	return domain.ComparisonResult{
		Identity:   obj.Identity(),
		ObjectType: obj.Type,
		TypeCode:   obj.TypeCode,
		Action:     domain.ActionError,
		Error:      err,
	}
}

package cohort

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mrsinham/recistforge/internal/complexity"
	"github.com/mrsinham/recistforge/internal/lesion"
	"github.com/mrsinham/recistforge/internal/lexicon"
	"github.com/mrsinham/recistforge/internal/recist"
	"github.com/mrsinham/recistforge/internal/report"
	"github.com/mrsinham/recistforge/internal/util"
)

// phase is one step of the per-timepoint pipeline. The order of
// timepointPhases is the contract: measurements must exist before the nadir
// moves, and the nadir must move before classification reads it.
type phase int

const (
	phaseSimulate phase = iota
	phaseUpdateNadir
	phaseClassify
	phaseRender
)

var timepointPhases = []phase{phaseSimulate, phaseUpdateNadir, phaseClassify, phaseRender}

// trajectories are the planned qualitative arcs a patient can follow.
// Courses longer than three follow-ups repeat the last element.
var trajectories = [][]recist.Response{
	{recist.ResponsePR, recist.ResponsePR, recist.ResponseSD}, // responder
	{recist.ResponseSD, recist.ResponsePD, recist.ResponsePD}, // progressor
	{recist.ResponsePR, recist.ResponseSD, recist.ResponsePD}, // mixed
	{recist.ResponseSD, recist.ResponseSD, recist.ResponseSD}, // flat
}

const (
	newLesionProbUnderPD = 0.70
	newLesionProbFloor   = 0.03
)

func rbool(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// patientState carries the mutable course of one patient between
// timepoints.
type patientState struct {
	opts    *Options
	rng     *rand.Rand
	sampler *complexity.Sampler

	pid     string
	primary lesion.Lesion
	nodes   []lesion.Lesion
	mets    []lesion.Lesion

	baselineTargets []recist.Target
	nonTargets      []recist.NonTarget
	baselineSLD     int
	nadirSLD        int

	trajectory []recist.Response
	dates      []time.Time

	// per-target value at the previous timepoint, keyed by lesion key
	prevByKey map[string]int
}

// SynthPatientCourse builds one patient's full longitudinal course:
// baseline lesions, target selection, planned trajectory, and one rendered
// study per timepoint.
func SynthPatientCourse(opts *Options, patientIndex int, rng *rand.Rand) (*Course, error) {
	sampler, err := complexity.NewSampler(opts.ComplexityConfig, opts.ComplexityLevel, rng)
	if err != nil {
		return nil, fmt.Errorf("complexity sampler: %w", err)
	}

	s := &patientState{
		opts:    opts,
		rng:     rng,
		sampler: sampler,
		pid:     util.PatientID(patientIndex),
	}
	s.generateBaselineDisease()
	s.baselineTargets, s.nonTargets = recist.SelectTargets(s.primary, s.nodes, s.mets)
	s.baselineSLD = recist.SumOfDiameters(s.baselineTargets)
	s.nadirSLD = s.baselineSLD
	s.prevByKey = make(map[string]int, len(s.baselineTargets))
	for _, t := range s.baselineTargets {
		s.prevByKey[t.Key] = t.MeasureMM
	}

	nTP := opts.MinTimepoints + rng.IntN(opts.MaxTimepoints-opts.MinTimepoints+1)
	s.dates = make([]time.Time, nTP)
	s.dates[0] = util.GenerateBaselineDate(rng)
	for i := 1; i < nTP; i++ {
		s.dates[i] = util.NextFollowUpDate(s.dates[i-1], rng)
	}
	s.trajectory = trajectories[rng.IntN(len(trajectories))]

	sexes := []string{"M", "F"}
	course := &Course{
		PatientID:    s.pid,
		PatientName:  util.GeneratePatientName(sexes[rng.IntN(2)], rng),
		BaselineDate: util.ISODate(s.dates[0]),
	}
	for i := range s.dates {
		study, err := s.runTimepoint(i)
		if err != nil {
			return nil, fmt.Errorf("patient %s timepoint %d: %w", s.pid, i, err)
		}
		course.Studies = append(course.Studies, *study)
	}
	return course, nil
}

// generateBaselineDisease draws the primary, regional nodes and possible
// distant metastases. Lung primaries tend to seed thoracic nodes,
// abdominopelvic primaries seed abdominal and pelvic stations.
func (s *patientState) generateBaselineDisease() {
	site := s.opts.PrimaryMix[s.rng.IntN(len(s.opts.PrimaryMix))]
	s.primary = lesion.GeneratePrimary(site, s.rng)

	if site == "lung" || rbool(s.rng, 0.4) {
		if rbool(s.rng, 0.6) {
			s.nodes = append(s.nodes, lesion.GenerateNode("thoracic", s.rng))
		}
	}
	if site != "lung" || rbool(s.rng, 0.5) {
		if rbool(s.rng, 0.6) {
			s.nodes = append(s.nodes, lesion.GenerateNode("abdominal", s.rng))
		}
		if rbool(s.rng, 0.4) {
			s.nodes = append(s.nodes, lesion.GenerateNode("pelvic", s.rng))
		}
	}

	if rbool(s.rng, s.opts.MetRate) {
		n := 1 + s.rng.IntN(2)
		for i := 0; i < n; i++ {
			s.mets = append(s.mets, lesion.GenerateMetastasis(s.rng))
		}
	}
}

// timepointResult accumulates the outputs of the phases within one
// timepoint.
type timepointResult struct {
	measurements []recist.Measurement
	hasNew       bool
	newMet       *lesion.Lesion
	category     recist.Response
	nodeCrossed  bool
	study        *Study
}

// runTimepoint executes the phase sequence for timepoint i. Baseline skips
// the simulation and classification phases: targets were selected at course
// construction and no category exists yet.
func (s *patientState) runTimepoint(i int) (*Study, error) {
	res := &timepointResult{category: recist.ResponseBaseline}

	for _, ph := range timepointPhases {
		switch ph {
		case phaseSimulate:
			if i == 0 {
				continue
			}
			plan := s.trajectory[min(i-1, len(s.trajectory)-1)]
			res.measurements = recist.ApplyPlannedResponse(s.baselineTargets, plan, s.nadirSLD, s.rng)

			newP := newLesionProbFloor
			if p := s.sampler.Level().NewLesionProbability; p > newP {
				newP = p
			}
			res.hasNew = (plan == recist.ResponsePD && rbool(s.rng, newLesionProbUnderPD)) || rbool(s.rng, newP)
			if res.hasNew {
				m := lesion.GenerateMetastasis(s.rng)
				res.newMet = &m
			}

		case phaseUpdateNadir:
			if i == 0 {
				continue
			}
			if cur := recist.SumFollow(res.measurements); cur < s.nadirSLD {
				s.nadirSLD = cur
			}

		case phaseClassify:
			if i == 0 {
				continue
			}
			snap := recist.NewSnapshot(s.baselineSLD, s.nadirSLD, res.measurements, res.hasNew)
			res.category = recist.Classify(snap)
			res.nodeCrossed = s.nodeCrossedThreshold(res.measurements)

		case phaseRender:
			study, err := s.renderStudy(i, res)
			if err != nil {
				return nil, err
			}
			res.study = study
		}
	}

	// Persist state for later timepoints after the full phase run.
	for _, m := range res.measurements {
		s.prevByKey[m.Key] = m.FollowMM
	}
	if res.newMet != nil {
		s.mets = append(s.mets, *res.newMet)
	}
	return res.study, nil
}

// nodeCrossedThreshold reports whether a nodal target regrew across the
// 15 mm target threshold since the previous timepoint.
func (s *patientState) nodeCrossedThreshold(ms []recist.Measurement) bool {
	for _, m := range ms {
		if m.Kind != lesion.KindNode {
			continue
		}
		if prev, ok := s.prevByKey[m.Key]; ok &&
			prev < recist.NodalTargetMinMM && m.FollowMM >= recist.NodalTargetMinMM {
			return true
		}
	}
	return false
}

// applyFollowToLesions returns copies of the lesion structures with sizes
// updated to the follow-up target measurements, so the prose matches the
// numbers in the RECIST block.
func (s *patientState) applyFollowToLesions(ms []recist.Measurement) (lesion.Lesion, []lesion.Lesion, []lesion.Lesion) {
	p := s.primary
	nodes := append([]lesion.Lesion(nil), s.nodes...)
	mets := append([]lesion.Lesion(nil), s.mets...)

	byKey := make(map[string]int, len(ms))
	for _, m := range ms {
		byKey[m.Key] = m.FollowMM
	}
	if v, ok := byKey[p.Key()]; ok {
		p.LongestDiameterMM = v
	}
	for i := range nodes {
		if v, ok := byKey[nodes[i].Key()]; ok {
			nodes[i].ShortAxisMM = v
		}
	}
	for i := range mets {
		if v, ok := byKey[mets[i].Key()]; ok {
			mets[i].LongestDiameterMM = v
		}
	}
	return p, nodes, mets
}

func (s *patientState) renderStudy(i int, res *timepointResult) (*Study, error) {
	profile := s.sampler.Sample(s.primary.Site)

	p, nodes, mets := s.primary, s.nodes, s.mets
	if i > 0 {
		p, nodes, mets = s.applyFollowToLesions(res.measurements)
		if res.newMet != nil {
			mets = append(mets, *res.newMet)
		}
	}

	comparison := ""
	if i > 0 {
		comparison = fmt.Sprintf("Compared to prior %s, interval evaluation as below.", util.ISODate(s.dates[i-1]))
	}

	hedge := lexicon.HedgeDefinite
	if rbool(s.rng, s.opts.UncertaintyMix) {
		hedge = lexicon.UncertainHedges[s.rng.IntN(len(lexicon.UncertainHedges))]
	}

	var block string
	if i == 0 {
		block = report.RECISTBlock(s.baselineTargets, nil, false)
	} else {
		block = report.RECISTBlock(s.baselineTargets, res.measurements, res.hasNew)
	}

	in := report.Input{
		Primary:          p,
		Nodes:            nodes,
		Mets:             mets,
		IncludeNegatives: s.opts.IncludeNegatives,
		UnitMMProb:       s.opts.UnitMix,
		Comparison:       comparison,
		Hedge:            hedge,
		Profile:          profile,
		RECISTBlock:      block,
		Category:         res.category.String(),
	}
	technique := lexicon.TechniqueLines[s.rng.IntN(len(lexicon.TechniqueLines))]
	text := report.Render(in, s.opts.Style, technique, s.rng)

	rec := Record{
		PatientID: s.pid,
		StudyDate: util.ISODate(s.dates[i]),
		Timepoint: i,
		RECIST: RECISTSummary{
			BaselineSLDMM:   s.baselineSLD,
			OverallResponse: res.category.String(),
		},
		ComplexityProfile: profile,
		Lesions:           s.lesionRows(i, res, p, nodes, mets),
	}

	relevanceIn := complexity.RelevanceInput{
		HasFollowUp: i > 0,
		Response:    res.category,
		Artifact:    profile.Artifact,
		UsedHedging: profile.Hedge != "" || hedge != lexicon.HedgeDefinite,
	}
	if i > 0 {
		cur := recist.SumFollow(res.measurements)
		rec.RECIST.CurrentSLDMM = &cur
		nadir := s.nadirSLD
		rec.RECIST.NadirSLDMM = &nadir

		relevanceIn.CurrentSLDMM = cur
		relevanceIn.NadirSLDMM = nadir
		relevanceIn.NewMeasurableMetastasis = res.newMet != nil && res.newMet.LongestDiameterMM >= recist.NonNodalTargetMinMM
		relevanceIn.NodeCrossedThreshold = res.nodeCrossed
	}
	rec.StagingRelevance = complexity.ComputeStagingRelevance(s.opts.ComplexityConfig.Relevance, relevanceIn)

	return &Study{Record: rec, ReportText: text}, nil
}

// lesionRows flattens the current lesion state into ground-truth rows.
func (s *patientState) lesionRows(i int, res *timepointResult, p lesion.Lesion, nodes, mets []lesion.Lesion) []LesionRow {
	targetKeys := make(map[string]bool, len(s.baselineTargets))
	for _, t := range s.baselineTargets {
		targetKeys[t.Key] = true
	}

	row := func(l lesion.Lesion) LesionRow {
		return LesionRow{
			LesionID:  l.ID,
			Kind:      l.Kind.String(),
			Site:      l.Site,
			Station:   l.Station,
			MeasureMM: l.MeasurementMM(),
			Target:    targetKeys[l.Key()],
		}
	}

	rows := []LesionRow{row(p)}
	for _, n := range nodes {
		rows = append(rows, row(n))
	}
	for _, m := range mets {
		rows = append(rows, row(m))
	}
	return rows
}

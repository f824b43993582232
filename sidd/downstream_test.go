package sidd

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/sidd-go/record"
)

// General test mocks and utils

const sampleDownstreamDocument = `<?xml version="1.0" encoding="UTF-8"?>
<DownstreamReprocessing xmlns="urn:SIDD:2.0.0">
	<GeometricChip>
		<ChipSize><Row>512</Row><Col>604</Col></ChipSize>
		<OriginalUpperLeftCoordinate><Row>100.5</Row><Col>200.25</Col></OriginalUpperLeftCoordinate>
		<OriginalUpperRightCoordinate><Row>100.5</Row><Col>804.25</Col></OriginalUpperRightCoordinate>
		<OriginalLowerLeftCoordinate><Row>612.5</Row><Col>200.25</Col></OriginalLowerLeftCoordinate>
		<OriginalLowerRightCoordinate><Row>612.5</Row><Col>804.25</Col></OriginalLowerRightCoordinate>
	</GeometricChip>
	<ProcessingEvent>
		<ApplicationName>chip-tool</ApplicationName>
		<AppliedDateTime>2019-03-01T10:15:30.123456</AppliedDateTime>
		<InterpolationMethod>bilinear</InterpolationMethod>
		<Descriptor name="window">hamming</Descriptor>
		<Descriptor name="window">hann</Descriptor>
		<Descriptor name="factor">2.0</Descriptor>
	</ProcessingEvent>
	<ProcessingEvent>
		<ApplicationName>ortho-tool</ApplicationName>
		<AppliedDateTime>2019-03-02T08:00:00Z</AppliedDateTime>
	</ProcessingEvent>
</DownstreamReprocessing>`

func mockChip() *GeometricChip {
	return NewGeometricChip(
		NewRowColInt(512, 604),
		NewRowColDouble(100.5, 200.25),
		NewRowColDouble(100.5, 804.25),
		NewRowColDouble(612.5, 200.25),
		NewRowColDouble(612.5, 804.25),
	)
}

// Actual tests

func TestParseDownstreamReprocessing(t *testing.T) {
	// Tested code
	downstream, err := ParseDownstreamReprocessing([]byte(sampleDownstreamDocument))

	// Asserts
	assert.Nil(t, err, "Expected the sample document to parse; it errored: %v", err)
	assert.NotNil(t, downstream.GeometricChip)
	assert.Equal(t, int64(512), *downstream.GeometricChip.ChipSize.Row)
	assert.Equal(t, int64(604), *downstream.GeometricChip.ChipSize.Col)
	assert.Equal(t, 804.25, *downstream.GeometricChip.OriginalLowerRightCoordinate.Col)

	assert.Len(t, downstream.ProcessingEvents, 2)
	first := downstream.ProcessingEvents[0]
	assert.Equal(t, "chip-tool", first.ApplicationName)
	assert.Equal(t, "bilinear", first.InterpolationMethod)
	assert.Equal(t, 123456000, first.AppliedDateTime.Nanosecond())
	assert.Equal(t, record.Parameters{
		{Name: "window", Value: "hamming"},
		{Name: "window", Value: "hann"},
		{Name: "factor", Value: "2.0"},
	}, first.Descriptors)

	second := downstream.ProcessingEvents[1]
	assert.Equal(t, "ortho-tool", second.ApplicationName)
	assert.Equal(t, "", second.InterpolationMethod)
	assert.Len(t, second.Descriptors, 0)

	assert.Nil(t, record.Validate(downstream), "Expected the sample document to validate; it did not")
}

func TestParseDownstreamReprocessing_Malformed(t *testing.T) {
	_, err := ParseDownstreamReprocessing([]byte("<DownstreamReprocessing><GeometricChip>"))

	assert.NotNil(t, err, "Expected malformed XML to error; it did not")
}

func TestDownstreamReprocessing_RoundTrip(t *testing.T) {
	// Mock
	original, err := ParseDownstreamReprocessing([]byte(sampleDownstreamDocument))
	assert.Nil(t, err)

	// Tested code
	node, err := record.Encode(original, "", &DefaultNamespace)
	assert.Nil(t, err)
	reparsed, err := ParseDownstreamReprocessing([]byte(node.Document()))

	// Asserts
	assert.Nil(t, err)
	assert.True(t, record.Equal(original, reparsed), "Expected a serialized document to round-trip; it does not")
	assert.Equal(t, original.ProcessingEvents[0].AppliedDateTime, reparsed.ProcessingEvents[0].AppliedDateTime)
}

func TestEncode_ChipChildrenInDeclaredOrder(t *testing.T) {
	// Mock
	chip := mockChip()

	// Tested code
	node, err := record.Encode(chip, "", &DefaultNamespace)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "GeometricChip", node.Tag)
	tags := make([]string, len(node.Children))
	for i, child := range node.Children {
		tags[i] = child.Tag
	}
	assert.Equal(t, []string{
		"ChipSize",
		"OriginalUpperLeftCoordinate",
		"OriginalUpperRightCoordinate",
		"OriginalLowerLeftCoordinate",
		"OriginalLowerRightCoordinate",
	}, tags)
}

func TestEncode_EventsAreSiblingElements(t *testing.T) {
	// Mock
	downstream := &DownstreamReprocessing{
		ProcessingEvents: []*ProcessingEvent{
			NewProcessingEvent("first-tool", time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)),
			NewProcessingEvent("second-tool", time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC)),
			NewProcessingEvent("third-tool", time.Date(2019, 1, 3, 0, 0, 0, 0, time.UTC)),
		},
	}

	// Tested code
	node, err := record.Encode(downstream, "", &DefaultNamespace)

	// Asserts
	assert.Nil(t, err)
	assert.Nil(t, node.Child("ProcessingEvents"), "Expected no wrapper element around the event list")
	events := node.ChildrenByTag("ProcessingEvent")
	assert.Len(t, events, 3)
	assert.Equal(t, "first-tool", events[0].Child("ApplicationName").Text)
	assert.Equal(t, "third-tool", events[2].Child("ApplicationName").Text)
}

func TestApply_MappingConstruction(t *testing.T) {
	// Mock
	fields := record.Fields{
		"GeometricChip": record.Fields{
			"ChipSize":                     []int{512, 604},
			"OriginalUpperLeftCoordinate":  []float64{100.5, 200.25},
			"OriginalUpperRightCoordinate": []float64{100.5, 804.25},
			"OriginalLowerLeftCoordinate":  []float64{612.5, 200.25},
			"OriginalLowerRightCoordinate": []float64{612.5, 804.25},
		},
		"ProcessingEvents": []record.Fields{
			{"ApplicationName": "chip-tool", "Descriptors": map[string]string{"window": "hamming"}},
		},
	}

	// Tested code
	downstream := &DownstreamReprocessing{}
	err := record.Apply(downstream, fields, &DefaultNamespace)

	// Asserts
	assert.Nil(t, err, "Expected mapping construction to succeed; it errored: %v", err)
	assert.Equal(t, int64(512), *downstream.GeometricChip.ChipSize.Row)
	assert.Equal(t, 612.5, *downstream.GeometricChip.OriginalLowerLeftCoordinate.Row)
	assert.Len(t, downstream.ProcessingEvents, 1)
	assert.Equal(t, "chip-tool", downstream.ProcessingEvents[0].ApplicationName)
	assert.WithinDuration(t, time.Now().UTC(), downstream.ProcessingEvents[0].AppliedDateTime, 5*time.Second,
		"Expected an absent applied time to default to now")
	assert.Nil(t, record.Validate(downstream))
}

func TestNewProcessingEvent_ZeroTimeMeansNow(t *testing.T) {
	event := NewProcessingEvent("live-tool", time.Time{})

	assert.WithinDuration(t, time.Now().UTC(), event.AppliedDateTime, 5*time.Second)
}

func TestDecode_AbsentAppliedTimeStaysAbsent(t *testing.T) {
	// A document missing a required timestamp decodes without defaults so the
	// gap is visible to validation
	doc := `<DownstreamReprocessing xmlns="urn:SIDD:2.0.0">` +
		`<ProcessingEvent><ApplicationName>bare-tool</ApplicationName></ProcessingEvent>` +
		`</DownstreamReprocessing>`

	downstream, err := ParseDownstreamReprocessing([]byte(doc))

	assert.Nil(t, err)
	assert.True(t, downstream.ProcessingEvents[0].AppliedDateTime.IsZero(), "Expected no timestamp default during decoding")
	validationErr := record.Validate(downstream)
	assert.NotNil(t, validationErr)
	assert.Equal(t, []string{"ProcessingEvents[0].AppliedDateTime"}, validationErr.(*record.ValidationError).Missing)
}

func TestValidate_MissingCornerReportsDottedPath(t *testing.T) {
	// Mock
	downstream := &DownstreamReprocessing{
		GeometricChip: &GeometricChip{
			ChipSize:                    NewRowColInt(512, 604),
			OriginalUpperLeftCoordinate: NewRowColDouble(100.5, 200.25),
		},
	}

	// Tested code
	err := record.Validate(downstream)

	// Asserts
	assert.NotNil(t, err, "Expected a chip missing corners to fail validation; it passed")
	assert.Equal(t, []string{
		"GeometricChip.OriginalUpperRightCoordinate",
		"GeometricChip.OriginalLowerLeftCoordinate",
		"GeometricChip.OriginalLowerRightCoordinate",
	}, err.(*record.ValidationError).Missing)
}

func TestApplyStrict_MissingApplicationName(t *testing.T) {
	event := &ProcessingEvent{}
	err := record.ApplyStrict(event, record.Fields{"InterpolationMethod": "nearest"}, nil)

	assert.NotNil(t, err, "Expected strict construction to fail; it succeeded")
	validationErr, ok := err.(*record.ValidationError)
	assert.True(t, ok, "Expected a *ValidationError, got %T", err)
	assert.Equal(t, []string{"ApplicationName"}, validationErr.Missing)
}

func TestRoundTrip_EmptyRecord(t *testing.T) {
	// Mock
	downstream := &DownstreamReprocessing{}

	// Tested code
	node, err := record.Encode(downstream, "", &DefaultNamespace)
	assert.Nil(t, err)
	reparsed, err := ParseDownstreamReprocessing([]byte(node.Document()))

	// Asserts
	assert.Nil(t, err)
	assert.True(t, record.Equal(downstream, reparsed), "Expected an empty record to round-trip")
	assert.Nil(t, reparsed.GeometricChip)
	assert.Len(t, reparsed.ProcessingEvents, 0)
}

func TestDefaultNamespaceOnSerializedDocument(t *testing.T) {
	downstream := &DownstreamReprocessing{
		ProcessingEvents: []*ProcessingEvent{NewProcessingEvent("ns-tool", time.Date(2019, 7, 4, 12, 0, 0, 0, time.UTC))},
	}

	node, err := record.Encode(downstream, "", &DefaultNamespace)

	assert.Nil(t, err)
	assert.Contains(t, node.String(), `xmlns="urn:SIDD:2.0.0"`)
	// Children share the namespace; only the root declares it
	assert.Equal(t, 1, strings.Count(node.String(), "urn:SIDD:2.0.0"))
}

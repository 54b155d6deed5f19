package huggingface

import "hf-endpoint-service/internal/core/domain"

// taskSpec describes how one hosted inference task is wired: its default
// payload skeleton, whether the request body is raw file bytes, whether the
// upload may outlive the normal timeout, and whether the response is kept
// out of the audit log.
type taskSpec struct {
	defaults func() domain.TaskParams
	binary   bool
	slow     bool
	skipLog  bool
}

func textDefaults() domain.TaskParams {
	return domain.TaskParams{"inputs": ""}
}

func binaryDefaults() domain.TaskParams {
	return domain.TaskParams{"inputs": ""}
}

// taskSpecs is keyed by task name; sibling request methods in the upstream
// API differ only in this table.
var taskSpecs = map[string]taskSpec{
	domain.TaskTextClassification: {
		defaults: func() domain.TaskParams {
			return domain.TaskParams{
				"inputs":     "",
				"parameters": map[string]any{"top_k": nil},
			}
		},
	},
	domain.TaskZeroShotClassification: {
		defaults: func() domain.TaskParams {
			return domain.TaskParams{
				"inputs":     "",
				"parameters": map[string]any{"candidate_labels": []string{}},
			}
		},
	},
	domain.TaskTokenClassification: {
		defaults: func() domain.TaskParams {
			return domain.TaskParams{
				"inputs":     "",
				"parameters": map[string]any{"aggregation_strategy": domain.AggregationStrategySimple},
			}
		},
	},
	domain.TaskQuestionAnswering: {
		defaults: func() domain.TaskParams {
			return domain.TaskParams{
				"inputs": map[string]any{"question": "", "context": ""},
			}
		},
	},
	domain.TaskFillMask:             {defaults: textDefaults},
	domain.TaskSummarization:        {defaults: textDefaults},
	domain.TaskTranslation:          {defaults: textDefaults},
	domain.TaskTextToTextGeneration: {defaults: textDefaults},
	domain.TaskTextGeneration:       {defaults: textDefaults},
	// feature_extraction responses are embeddings and are deliberately kept
	// out of the audit log; they are large and carry no diagnostic value.
	domain.TaskFeatureExtraction:  {defaults: textDefaults, skipLog: true},
	domain.TaskSentenceEmbeddings: {defaults: textDefaults},
	domain.TaskSentenceSimilarity: {
		defaults: func() domain.TaskParams {
			return domain.TaskParams{
				"inputs": map[string]any{"source_sentence": "", "sentences": []string{}},
			}
		},
	},
	domain.TaskRanking: {
		defaults: func() domain.TaskParams {
			return domain.TaskParams{"inputs": []any{}}
		},
	},
	domain.TaskTableQuestionAnswering: {
		defaults: func() domain.TaskParams {
			return domain.TaskParams{
				"inputs": map[string]any{"query": "", "table": map[string]any{}},
			}
		},
	},
	domain.TaskConversational: {
		defaults: func() domain.TaskParams {
			return domain.TaskParams{
				"inputs": map[string]any{
					"past_user_inputs":    []string{},
					"generated_responses": []string{},
					"text":                "",
				},
			}
		},
	},
	domain.TaskTextToImage:         {defaults: textDefaults},
	domain.TaskImageClassification: {defaults: binaryDefaults, binary: true},
	domain.TaskSpeechRecognition:   {defaults: binaryDefaults, binary: true, slow: true},
	domain.TaskAudioClassification: {defaults: binaryDefaults, binary: true, slow: true},
	domain.TaskObjectDetection:     {defaults: binaryDefaults, binary: true},
	domain.TaskImageSegmentation:   {defaults: binaryDefaults, binary: true},
}

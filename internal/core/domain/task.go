package domain

// Inference task identifiers.
const (
	TaskTextClassification      = "text_classification"
	TaskZeroShotClassification  = "zero_shot_classification"
	TaskTokenClassification     = "token_classification"
	TaskQuestionAnswering       = "question_answering"
	TaskFillMask                = "fill_mask"
	TaskSummarization           = "summarization"
	TaskTranslation             = "translation"
	TaskTextToTextGeneration    = "text_to_text_generation"
	TaskTextGeneration          = "text_generation"
	TaskFeatureExtraction       = "feature_extraction"
	TaskSentenceEmbeddings      = "sentence_embeddings"
	TaskSentenceSimilarity      = "sentence_similarity"
	TaskRanking                 = "ranking"
	TaskTableQuestionAnswering  = "table_question_answering"
	TaskConversational          = "conversational"
	TaskTextToImage             = "text_to_image"
	TaskImageClassification     = "image_classification"
	TaskSpeechRecognition       = "automatic_speech_recognition"
	TaskAudioClassification     = "audio_classification"
	TaskObjectDetection         = "object_detection"
	TaskImageSegmentation       = "image_segmentation"
	TaskImageTextToText         = "image_text_to_text"
)

// AggregationStrategySimple is the default token-classification aggregation.
const AggregationStrategySimple = "simple"

// MaskToken is the fill-mask placeholder.
const MaskToken = "[MASK]"

// TaskOptions maps task identifiers to display labels.
func TaskOptions() map[string]string {
	return map[string]string{
		TaskTextClassification:     "Text Classification",
		TaskZeroShotClassification: "Zero Shot Classification",
		TaskTokenClassification:    "Token Classification",
		TaskQuestionAnswering:      "Question Answering",
		TaskFillMask:               "Fill Mask",
		TaskSummarization:          "Summarization",
		TaskTranslation:            "Translation",
		TaskTextToTextGeneration:   "Text To Text Generation",
		TaskTextGeneration:         "Text Generation",
		TaskFeatureExtraction:      "Feature Extraction",
		TaskSentenceEmbeddings:     "Sentence Embeddings",
		TaskSentenceSimilarity:     "Sentence Similarity",
		TaskRanking:                "Ranking",
		TaskTableQuestionAnswering: "Table Question Answering",
		TaskConversational:         "Conversational",
		TaskTextToImage:            "Text To Image",
		TaskImageClassification:    "Image Classification",
		TaskSpeechRecognition:      "Automatic Speech Recognition",
		TaskAudioClassification:    "Audio Classification",
		TaskObjectDetection:        "Object Detection",
		TaskImageSegmentation:      "Image Segmentation",
	}
}

// TaskModels maps task identifiers to the default hosted model used when no
// inference URL is configured.
// https://huggingface.co/docs/api-inference/detailed_parameters
func TaskModels() map[string]string {
	return map[string]string{
		TaskTextClassification:     "distilbert-base-uncased-finetuned-sst-2-english",
		TaskZeroShotClassification: "facebook/bart-large-mnli",
		TaskTokenClassification:    "dbmdz/bert-large-cased-finetuned-conll03-english",
		TaskQuestionAnswering:      "deepset/roberta-base-squad2",
		TaskFillMask:               "bert-base-uncased",
		TaskSummarization:          "facebook/bart-large-cnn",
		TaskTranslation:            "Helsinki-NLP/opus-mt-ru-en",
		TaskTextToTextGeneration:   "dbmdz/bert-large-cased-finetuned-conll03-english",
		TaskTextGeneration:         "gpt2",
		TaskFeatureExtraction:      "sentence-transformers/paraphrase-xlm-r-multi",
		TaskSentenceSimilarity:     "sentence-transformers/all-MiniLM-L6-v2",
		TaskImageClassification:    "google/vit-base-patch16-224",
		TaskSpeechRecognition:      "facebook/wav2vec2-base-960h",
		TaskAudioClassification:    "superb/hubert-large-superb-er",
		TaskObjectDetection:        "facebook/detr-resnet-50",
		TaskImageSegmentation:      "facebook/detr-resnet-50-panoptic",
		TaskTableQuestionAnswering: "google/tapas-base-finetuned-wtq",
		TaskConversational:         "microsoft/DialoGPT-large",
	}
}

// TaskParams is a caller-supplied parameter map merged over the task's
// default skeleton before the request goes out. Caller values win.
type TaskParams map[string]any

// TaskResult is a raw decoded task response plus the body it came from.
type TaskResult struct {
	Task string
	Body []byte
	Data any
}

// ResponseEntry is one row of the response audit log.
type ResponseEntry struct {
	ID      int64
	Type    string
	Created int64
	Data    string
}

package llm

import "fmt"

func metricsPrompt(req EvalRequest) string {
	return fmt.Sprintf(`You are an expert evaluator. Return ONLY a JSON object with exactly these keys (all lower case):
- ramp_up_time (float in [0,1])
- ramp_up_time_latency (int milliseconds)
- performance_claims (float in [0,1])
- performance_claims_latency (int milliseconds)
- bus_factor (float in [0,1])
- bus_factor_latency (int milliseconds)
- dataset_quality (float in [0,1])
- dataset_quality_latency (int milliseconds)
- code_quality (float in [0,1])
- code_quality_latency (int milliseconds)

Metric operationalization: 0 means the absolute worst and 1 means the best.
- Ramp Up Time: assess ease of getting started from README, tutorials, and examples.
- Performance Claims: check whether README/paper claims cite and align with recognized benchmarks; score verified, credible claims higher.
- Bus Factor: from the repository's contribution history, estimate how evenly knowledge is spread across contributors; higher means more evenly spread.
- Dataset Quality: be a strict auditor of the documented training data; severely penalize missing, vague, or incomplete information, never rewarding absence. If no usable training dataset information exists, score 0.
- Code Quality: be a strict auditor of the provided code; judge linting hygiene, typing, and maintainability. If no code is available, score 0.

Strict output rules:
- Output ONLY JSON. No code fences, no commentary.
- Latencies must be integers in milliseconds.
- All metric names must be lower case and match exactly.

Model (may be a full registry URL or <owner>/<name>):
%s

README (may be empty):
%s

Code link (may be empty):
%s

Dataset link provided by user (may be empty):
%s
`, req.ModelRef, req.Readme, req.CodeURL, req.DatasetLink)
}

func discoveryPrompt(modelRef, readme string) string {
	return fmt.Sprintf(`You are a precise information extractor. Return ONLY a JSON object with exactly these keys:
- dataset_url (string): the most relevant training dataset URL in the form https://huggingface.co/datasets/<owner>/<name> extracted from the README/model context. If none is clearly indicated, return an empty string "".
- dataset_discovery_latency (int milliseconds)

Rules:
- Output ONLY JSON. No code fences, no commentary.
- If the README mentions multiple datasets, pick the primary one used for training or pretraining.
- Prefer an exact dataset URL; if only a bare name is present, return owner/name when known, else "".

Model (may be a full registry URL or <owner>/<name>):
%s

README (full text):
%s
`, modelRef, readme)
}

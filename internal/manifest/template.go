package manifest

// TemplateJSON returns a self-describing manifest template for
// `ssmde manifest init`. The action/window/owner fields are documentation
// for policy authors; Load ignores anything it does not recognize.
func TemplateJSON() string {
	return `{
  "manifest_id": "PLANT_A_BEARING_SAFETY_v7",
  "domain": "Industrial/Mechanical",
  "description": "Bearing health policy for Plant A, Line 3. Align via clamp->atanh->accumulate->tanh; bands carry escalation promises.",
  "align_computation": {
    "eps_a": 1e-06,
    "eps_w": 1e-12,
    "weights": "uniform",
    "pipeline": [
      "a_c := clamp(a_raw, -1+eps_a, +1-eps_a)",
      "u := atanh(a_c)",
      "U += w * u ; W += w",
      "align := tanh( U / max(W, eps_w) )"
    ]
  },
  "bands": [
    {"name": "CRITICAL", "align_min": -1.00, "align_max": -0.80, "action": "stop/evacuate", "window": "human respond in <= 10 min"},
    {"name": "AMBER", "align_min": -0.80, "align_max": -0.30, "action": "inspect", "window": "inspect in <= 30 min"},
    {"name": "A0", "align_min": -0.30, "align_max": 0.70, "action": "monitor only", "window": "inspect in <= 8h"},
    {"name": "A++", "align_min": 0.70, "align_max": 1.00, "action": "no action", "window": "none"}
  ],
  "escalation_owner": "Plant Safety Officer",
  "policy_author": "Reliability Board",
  "policy_version": "v7",
  "revision_notes": "Updated AMBER window from 60 min to 30 min"
}
`
}

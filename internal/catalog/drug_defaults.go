package catalog

import "github.com/cdss-core/internal/domain"

// DefaultDrugCatalog builds the seeded drug reference catalog. Interaction
// pairs and contraindications follow the ANSM interaction thesaurus and
// Stockley's Drug Interactions; renal dosing rows follow The Renal Drug
// Handbook. This is reference content only; the matching mechanics never
// depend on which entries exist.
func DefaultDrugCatalog() *DrugCatalog {
	return NewDrugCatalog(
		defaultInteractions,
		defaultContraindications,
		defaultRenalDosing,
		defaultDrugClasses,
		defaultAliases,
	)
}

var defaultDrugClasses = []domain.ClassReference{
	{Name: "nsaids", Members: []string{"ibuprofen", "naproxen", "diclofenac", "ketoprofen", "indomethacin", "piroxicam", "celecoxib"}},
	{Name: "ace-inhibitors", Members: []string{"lisinopril", "enalapril", "ramipril", "captopril", "perindopril"}},
	{Name: "penicillins", Members: []string{"amoxicillin", "ampicillin", "penicillin", "piperacillin", "flucloxacillin"}},
	{Name: "statins", Members: []string{"simvastatin", "atorvastatin", "rosuvastatin", "pravastatin", "fluvastatin"}},
	{Name: "nitrates", Members: []string{"nitroglycerin", "isosorbide dinitrate", "isosorbide mononitrate"}},
	{Name: "beta-blockers", Members: []string{"metoprolol", "bisoprolol", "atenolol", "propranolol", "carvedilol", "nebivolol"}},
	{Name: "macrolides", Members: []string{"clarithromycin", "erythromycin", "azithromycin"}},
	{Name: "ssris", Members: []string{"fluoxetine", "paroxetine", "sertraline", "citalopram", "escitalopram"}},
	{Name: "loop-diuretics", Members: []string{"furosemide", "bumetanide", "torasemide"}},
	{Name: "potassium-sparing-diuretics", Members: []string{"spironolactone", "eplerenone", "amiloride", "triamterene"}},
}

// Brand names mapped to the generic names the tables are keyed by.
var defaultAliases = map[string]string{
	"coumadin":   "warfarin",
	"glucophage": "metformin",
	"lasix":      "furosemide",
	"advil":      "ibuprofen",
	"nurofen":    "ibuprofen",
	"aleve":      "naproxen",
	"voltaren":   "diclofenac",
	"zestril":    "lisinopril",
	"zocor":      "simvastatin",
	"lipitor":    "atorvastatin",
	"tahor":      "atorvastatin",
	"cordarone":  "amiodarone",
	"lanoxin":    "digoxin",
	"viagra":     "sildenafil",
	"prozac":     "fluoxetine",
	"aldactone":  "spironolactone",
	"clamoxyl":   "amoxicillin",
	"augmentin":  "amoxicillin",
	"neurontin":  "gabapentin",
	"zyloric":    "allopurinol",
	"ciflox":     "ciprofloxacin",
	"lovenox":    "enoxaparin",
	"aspirine":   "aspirin",
}

var defaultInteractions = []InteractionRule{
	{
		DrugA: "warfarin", ClassB: "nsaids", Severity: domain.SeverityMajor,
		Mechanism:  "Additive anticoagulant effect plus gastric mucosal injury and platelet inhibition",
		Management: "Avoid combination; if unavoidable, add gastroprotection and monitor INR closely",
		Source:     "ANSM thesaurus; Stockley's",
	},
	{
		DrugA: "warfarin", DrugB: "amiodarone", Severity: domain.SeverityMajor,
		Mechanism:  "CYP2C9 inhibition raises warfarin exposure",
		Management: "Reduce warfarin dose by 30-50% and monitor INR weekly until stable",
		Source:     "ANSM thesaurus",
	},
	{
		DrugA: "spironolactone", ClassB: "ace-inhibitors", Severity: domain.SeverityMajor,
		Mechanism:  "Dual blockade of aldosterone and angiotensin raises serum potassium",
		Management: "Monitor potassium and creatinine within one week of initiation",
		Source:     "ANSM thesaurus",
	},
	{
		DrugA: "potassium chloride", ClassB: "ace-inhibitors", Severity: domain.SeverityModerate,
		Mechanism:  "Reduced renal potassium excretion under ACE inhibition",
		Management: "Avoid routine potassium supplementation; monitor serum potassium",
		Source:     "Stockley's",
	},
	{
		DrugA: "lisinopril", ClassB: "nsaids", Severity: domain.SeverityModerate,
		Mechanism:  "NSAID prostaglandin inhibition blunts renal perfusion and the antihypertensive effect",
		Management: "Prefer paracetamol; if combined, monitor blood pressure and creatinine",
		Source:     "ANSM thesaurus",
	},
	{
		DrugA: "simvastatin", DrugB: "clarithromycin", Severity: domain.SeverityContraindicated,
		Mechanism:  "Strong CYP3A4 inhibition multiplies statin exposure, risk of rhabdomyolysis",
		Management: "Suspend simvastatin during the macrolide course or switch to azithromycin",
		Source:     "ANSM thesaurus",
	},
	{
		DrugA: "simvastatin", DrugB: "amiodarone", Severity: domain.SeverityMajor,
		Mechanism:  "CYP3A4 inhibition, myopathy risk above 20 mg simvastatin",
		Management: "Cap simvastatin at 20 mg daily or switch to pravastatin",
		Source:     "Stockley's",
	},
	{
		DrugA: "sildenafil", ClassB: "nitrates", Severity: domain.SeverityContraindicated,
		Mechanism:  "Synergistic cGMP accumulation causes refractory hypotension",
		Management: "Never combine; 24h washout after sildenafil before any nitrate",
		Source:     "ANSM thesaurus",
	},
	{
		DrugA: "methotrexate", DrugB: "trimethoprim", Severity: domain.SeverityMajor,
		Mechanism:  "Additive folate antagonism, risk of pancytopenia",
		Management: "Avoid combination; if given, monitor full blood count",
		Source:     "Stockley's",
	},
	{
		DrugA: "digoxin", DrugB: "amiodarone", Severity: domain.SeverityMajor,
		Mechanism:  "P-glycoprotein inhibition roughly doubles digoxin levels",
		Management: "Halve digoxin dose at amiodarone start and check digoxin level",
		Source:     "ANSM thesaurus",
	},
	{
		DrugA: "lithium", ClassB: "nsaids", Severity: domain.SeverityMajor,
		Mechanism:  "Reduced renal lithium clearance leads to toxicity",
		Management: "Avoid NSAIDs; if unavoidable, monitor lithium level within 5 days",
		Source:     "Stockley's",
	},
	{
		DrugA: "tizanidine", DrugB: "ciprofloxacin", Severity: domain.SeverityContraindicated,
		Mechanism:  "CYP1A2 inhibition raises tizanidine exposure tenfold",
		Management: "Contraindicated; choose a non-CYP1A2-inhibiting antibiotic",
		Source:     "Stockley's",
	},
	{
		DrugA: "tramadol", ClassB: "ssris", Severity: domain.SeverityMajor,
		Mechanism:  "Additive serotonergic activity, risk of serotonin syndrome; lowered seizure threshold",
		Management: "Prefer a non-serotonergic analgesic; educate on serotonin syndrome symptoms",
		Source:     "ANSM thesaurus",
	},
	{
		DrugA: "verapamil", ClassB: "beta-blockers", Severity: domain.SeverityMajor,
		Mechanism:  "Additive negative chronotropic and inotropic effects, risk of AV block",
		Management: "Avoid combination in conduction disease; ECG monitoring if combined",
		Source:     "ANSM thesaurus",
	},
	{
		DrugA: "colchicine", DrugB: "clarithromycin", Severity: domain.SeverityContraindicated,
		Mechanism:  "CYP3A4 and P-gp inhibition causes colchicine accumulation, reported fatalities",
		Management: "Contraindicated, especially in renal impairment",
		Source:     "ANSM thesaurus",
	},
	{
		DrugA: "digoxin", ClassB: "loop-diuretics", Severity: domain.SeverityModerate,
		Mechanism:  "Diuretic-induced hypokalemia potentiates digoxin toxicity",
		Management: "Monitor potassium and supplement as needed",
		Source:     "Stockley's",
	},
	{
		DrugA: "aspirin", ClassB: "nsaids", Severity: domain.SeverityModerate,
		Mechanism:  "Competing COX-1 binding reduces aspirin's antiplatelet effect; additive GI risk",
		Management: "Take aspirin at least 30 minutes before the NSAID; consider gastroprotection",
		Source:     "Stockley's",
	},
	{
		DrugA: "metformin", DrugB: "iodinated contrast", Severity: domain.SeverityMajor,
		Mechanism:  "Contrast nephropathy can precipitate metformin-associated lactic acidosis",
		Management: "Hold metformin at contrast administration, resume after 48h with stable creatinine",
		Source:     "ANSM thesaurus",
	},
}

var defaultContraindications = []ContraindicationRule{
	{
		Class: "nsaids", ConditionOrAllergy: "chronic kidney disease", Severity: domain.SeverityMajor,
		Rationale: "NSAIDs reduce renal perfusion and accelerate CKD progression",
		Source:    "KDIGO 2012",
	},
	{
		Class: "nsaids", ConditionOrAllergy: "peptic ulcer", Severity: domain.SeverityMajor,
		Rationale: "High risk of ulcer recurrence and gastrointestinal bleeding",
		Source:    "ANSM",
	},
	{
		Drug: "metformin", ConditionOrAllergy: "severe renal impairment", Severity: domain.SeverityContraindicated,
		Rationale: "Risk of lactic acidosis when eGFR is below 30 mL/min",
		Source:    "EMA SmPC metformin",
	},
	{
		Class: "beta-blockers", ConditionOrAllergy: "asthma", Severity: domain.SeverityMajor,
		Rationale: "Non-selective beta blockade can precipitate severe bronchospasm",
		Source:    "GINA 2023",
	},
	{
		Class: "penicillins", ConditionOrAllergy: "penicillin", Severity: domain.SeverityContraindicated,
		Rationale: "Documented penicillin allergy, risk of anaphylaxis",
		Source:    "EAACI drug allergy guideline",
	},
	{
		Drug: "aspirin", ConditionOrAllergy: "nsaid", Severity: domain.SeverityMajor,
		Rationale: "Cross-reactive hypersensitivity with NSAID allergy",
		Source:    "EAACI drug allergy guideline",
	},
	{
		Drug: "nitrofurantoin", ConditionOrAllergy: "renal impairment", Severity: domain.SeverityContraindicated,
		Rationale: "Ineffective urine concentrations and neuropathy risk below 45 mL/min",
		Source:    "EMA SmPC nitrofurantoin",
	},
	{
		Drug: "spironolactone", ConditionOrAllergy: "hyperkalemia", Severity: domain.SeverityContraindicated,
		Rationale: "Aldosterone antagonism worsens potassium retention",
		Source:    "EMA SmPC spironolactone",
	},
	{
		Drug: "sildenafil", ConditionOrAllergy: "recent myocardial infarction", Severity: domain.SeverityMajor,
		Rationale: "Hemodynamic stress within 90 days of infarction",
		Source:    "EMA SmPC sildenafil",
	},
	{
		Drug: "warfarin", ConditionOrAllergy: "pregnancy", Severity: domain.SeverityContraindicated,
		Rationale: "Teratogenic in the first trimester, fetal bleeding later",
		Source:    "ACCP 2012",
	},
	{
		Class: "statins", ConditionOrAllergy: "active liver disease", Severity: domain.SeverityMajor,
		Rationale: "Hepatotoxicity risk with decompensated hepatic disease",
		Source:    "EMA SmPC statins",
	},
	{
		Drug: "colchicine", ConditionOrAllergy: "severe renal impairment", Severity: domain.SeverityMajor,
		Rationale: "Accumulation causes neuromyopathy and cytopenia",
		Source:    "EMA SmPC colchicine",
	},
}

var defaultRenalDosing = []RenalDoseRule{
	{
		Drug:        "metformin",
		NormalDose:  "500-1000 mg twice daily",
		EGFR30to59:  "Maximum 1000 mg/day; monitor renal function every 3-6 months",
		EGFR15to29:  "Contraindicated; stop metformin",
		EGFRBelow15: "Contraindicated",
		Dialysis:    "Contraindicated",
	},
	{
		Drug:        "gabapentin",
		NormalDose:  "300-1200 mg three times daily",
		EGFR30to59:  "200-700 mg twice daily",
		EGFR15to29:  "200-700 mg once daily",
		EGFRBelow15: "100-300 mg once daily",
		Dialysis:    "100-300 mg after each hemodialysis session",
	},
	{
		Drug:        "allopurinol",
		NormalDose:  "300 mg once daily",
		EGFR30to59:  "200 mg once daily",
		EGFR15to29:  "100 mg once daily",
		EGFRBelow15: "100 mg every other day",
		Dialysis:    "100 mg after each dialysis session",
	},
	{
		Drug:        "ciprofloxacin",
		NormalDose:  "500 mg twice daily",
		EGFR30to59:  "No adjustment; use 250-500 mg twice daily",
		EGFR15to29:  "250-500 mg once daily",
		EGFRBelow15: "250-500 mg once daily after dialysis if applicable",
		Dialysis:    "250-500 mg once daily, after dialysis on dialysis days",
	},
	{
		Drug:        "levofloxacin",
		NormalDose:  "500 mg once daily",
		EGFR30to59:  "500 mg loading, then 250 mg once daily",
		EGFR15to29:  "500 mg loading, then 250 mg every 48h",
		EGFRBelow15: "500 mg loading, then 125 mg every 48h",
		Dialysis:    "500 mg loading, then 125 mg every 48h; no supplement after dialysis",
	},
	{
		Drug:        "enoxaparin",
		NormalDose:  "1 mg/kg twice daily (treatment dose)",
		EGFR30to59:  "No adjustment; monitor anti-Xa in prolonged use",
		EGFR15to29:  "1 mg/kg once daily",
		EGFRBelow15: "1 mg/kg once daily with anti-Xa monitoring",
		Dialysis:    "Avoid; prefer unfractionated heparin",
	},
	{
		Drug:        "digoxin",
		NormalDose:  "0.125-0.25 mg once daily",
		EGFR30to59:  "0.125 mg once daily",
		EGFR15to29:  "0.0625-0.125 mg once daily; monitor level",
		EGFRBelow15: "0.0625 mg once daily or every other day; monitor level",
		Dialysis:    "0.0625 mg every other day; digoxin is not dialyzable",
	},
	{
		Drug:        "vancomycin",
		NormalDose:  "15-20 mg/kg every 8-12h",
		EGFR30to59:  "15-20 mg/kg every 24h, trough-guided",
		EGFR15to29:  "15-20 mg/kg every 48h, trough-guided",
		EGFRBelow15: "Loading 20-25 mg/kg, redose by level",
		Dialysis:    "Loading 20-25 mg/kg, then dose after each dialysis by pre-dialysis level",
	},
	{
		Drug:        "ranitidine",
		NormalDose:  "150 mg twice daily",
		EGFR30to59:  "150 mg twice daily",
		EGFR15to29:  "150 mg once daily",
		EGFRBelow15: "150 mg once daily",
		Dialysis:    "150 mg once daily, after dialysis on dialysis days",
	},
	{
		Drug:        "sotalol",
		NormalDose:  "80 mg twice daily",
		EGFR30to59:  "80 mg once daily",
		EGFR15to29:  "80 mg every 36-48h",
		EGFRBelow15: "Avoid; proarrhythmic accumulation",
		Dialysis:    "80 mg after each dialysis session with QTc monitoring",
	},
}

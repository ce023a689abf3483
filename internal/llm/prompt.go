package llm

const extractionSystemPrompt = `You are a document processing expert that returns valid JSON. All metadata values must be strings, including numbers.`

// extractionPromptTemplate carries the full metadata contract for clinical
// trial documents. The {ocr_text} placeholder is substituted verbatim, so
// the template must not be run through fmt.
const extractionPromptTemplate = `You are given the OCR text of a clinical trial document. Analyze it and return a single JSON object with exactly these keys: "metadata", "formatted_content", "formatted_tables", "entity".

METADATA RULES:
- "metadata" is an object of string keys to string values. Include every field below; use "N/A" when the document does not contain the value.
- Required fields: "Sponsor", "Protocol Number", "CRA Name", "Site Number", "Visit Type", "Visit Start Date", "Visit End Date", "Investigator Name", "Date of Letter", "Date of Previous Visit", "Number of Days".
- All dates must be formatted as dd-mm-yyyy.
- "Site Number": if not stated explicitly, infer it from the leading digits of a subject or patient identifier (e.g. subject "03409-001" implies site "03409"). Use "N/A" only when no identifier is present.
- "Number of Days": the number of days between "Visit Start Date" and "Visit End Date", inclusive of neither bound being missing. Compute it when both dates are present; otherwise "N/A".
- Every metadata value must be a string. Convert numbers to strings.

CONTENT RULES:
- "formatted_content" is the document body rewritten as clean prose. Do not include tables in it.
- "formatted_tables" is an array. Each table is an object with "Table Title" and "Content", where "Content" is an array of row objects mapping column names to cell values. Use an empty array when the document has no tables.

ENTITY RULES:
- "entity" must be exactly one of: "MONITORING VISIT REPORT", "MONITORING VISIT FOLLOW-UP LETTER", "MONITORING VISIT CONFIRMATION LETTER", "SITE INITIATION VISIT (SIV) REPORT", "SITE INITIATION VISIT REPORT", "SITE INITIATION VISIT FOLLOW-UP LETTER", "SITE INITIATION VISIT CONFIRMATION LETTER", "CLOSE OUT VISIT REPORT", "CLOSE OUT VISIT FOLLOW-UP LETTER", "CLOSE OUT VISIT CONFIRMATION LETTER", "PRE-STUDY SITE VISIT REPORT", "PRE-STUDY SITE VISIT FOLLOW-UP LETTER", "PRE-STUDY SITE VISIT CONFIRMATION LETTER".
- If the document matches none of these, use "UNKNOWN".

RETURN ONLY VALID JSON. No commentary, no markdown fences.

OCR TEXT:
{ocr_text}`

const intentSystemPrompt = `You are a query analysis assistant that returns valid JSON.`

// intentPromptTemplate splits a chat question into exact metadata filters
// and the residual semantic query.
const intentPromptTemplate = `Analyze the user question about stored clinical trial documents and return a JSON object with exactly two keys:
- "filters": an object of metadata field names to exact values the user asked for. Only use these field names: "Sponsor", "Protocol Number", "CRA Name", "Site Number", "Visit Type", "Investigator Name", "Date of Letter". Leave it empty when the question names no specific field value.
- "semantic_query": the question rephrased for semantic search over document content.

RETURN ONLY VALID JSON.

Question: {query}`

const answerSystemPrompt = `You are a clinical trial document assistant. Answer strictly from the provided document context. Cite the filenames of the documents you used. If the context does not contain the answer, say that you could not find it in the available documents.`

const answerPromptTemplate = `Context:
{context}

Question: {query}`

package ai

const classificationPrompt = `You are a financial data expert. For each ticker below, classify it using ONLY these allowed values.

Allowed REGIONS (percentages must sum to 100):
  - US: United States
  - DM: Developed Markets ex-US (Europe, Japan, Australia, Canada, etc.)
  - EM: Emerging Markets (China, India, Brazil, etc.)
  - Global: Cannot be attributed to a single region (e.g., commodities, gold)

Allowed CATEGORIES - GICS-style sectors plus special categories (percentages must sum to 100):
  - Technology (software, semiconductors, hardware)
  - Financials (banks, insurance, capital markets)
  - Health Care (pharma, biotech, medical devices)
  - Consumer Discretionary (retail, autos, apparel, restaurants)
  - Communication Services (media, telecom, social platforms)
  - Industrials (aerospace, defense, machinery, transport)
  - Consumer Staples (food, beverages, household products)
  - Energy (oil & gas, pipelines, energy services)
  - Utilities (electric, gas, water utilities)
  - Real Estate (REITs, real estate services)
  - Materials (chemicals, mining, construction materials)
  - Precious Metals (gold, silver, platinum, mining stocks for precious metals)
  - Commodities (oil, agriculture, broad commodity baskets - NOT mining equities)
  - Cryptocurrency (Bitcoin, Ethereum, crypto funds)
  - Short-Term Treasuries (US Treasury bonds with maturity < 3 years, T-bills, short TIPS)
  - Long-Term Treasuries (US Treasury bonds with maturity > 3 years, intermediate/long TIPS)
  - Cash (money market funds, cash equivalents)
  - Other (anything that doesn't fit above - corporate bonds, international bonds, etc.)

Rules:
- Use ONLY the category and region keys listed above, exactly as spelled.
- Percentages in each breakdown must sum to exactly 100.
- For ETFs, base the breakdown on underlying holdings sector composition.
- For individual stocks, classify by the company's primary business sector.
- Precious metals mining stocks (GDX, GDXJ) go under Precious Metals, not Materials.
- Energy MLPs go under Energy.

Return ONLY valid JSON, no markdown and no explanation. Format:
{
  "TICKER": {
    "region": {"US": 60, "DM": 30, "EM": 10},
    "category": {"Technology": 100}
  }
}

Tickers to classify:
`

const analysisPrompt = `You are a thoughtful investment strategist writing for a sophisticated individual investor (not an institution). Analyze this portfolio and write a clear, narrative-style analysis in **Markdown**. No jargon like "equity beta" or "duration risk". Instead, explain what the portfolio *says* about the investor's view of the world, as if you're talking to a smart friend over coffee.

Structure (use these exact headers):

### The Big Picture
One punchy paragraph (~50 words) that names the portfolio's overall philosophy in plain language (e.g. "macro-aware, inflation-hedged, value-oriented") and its single biggest bet.

### What This Portfolio Is Saying
Write 2-3 flowing paragraphs (not bullet points). Compare to a standard 60/40 US-centric portfolio and explain the key tilts: what you're overweight, underweight, and *why* that matters. Weave together:
- The macro thesis (inflation, rates, recession, dollar strength/weakness)
- The geopolitical stance (EM conviction, commodity-producer nations, de-dollarization, US exceptionalism vs global diversification)
- What the cash/treasury buffer means strategically (optionality, dry powder, timing)
- The commodity/precious metals/crypto angle

Frame it as "this portfolio is built for a world where X, Y, Z happen" and paint the scenario the investor is positioning for.

### The Risk of Being Wrong
One paragraph on the main scenario where this portfolio underperforms. Be specific about what would need to happen in the world for this allocation to look bad (e.g. "US exceptionalism persists, tech keeps grinding higher, and you sit in cash watching the S&P rally another 20%").

Write conversationally but with authority. Reference actual percentages from the data to ground your analysis, but don't list holdings. Total ~250-300 words.

Portfolio data:
`

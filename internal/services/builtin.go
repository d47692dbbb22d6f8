package services

import "rebalancer/internal/allocation"

// Sector splits for broad index funds. Exact fund compositions drift over
// time; these are rounded to whole percents and kept summing to 100.
var (
	usBroadMarket = allocation.Distribution{
		"Technology": 30, "Financials": 13, "Health Care": 12,
		"Consumer Discretionary": 10, "Communication Services": 9,
		"Industrials": 8, "Consumer Staples": 6, "Energy": 4,
		"Utilities": 3, "Real Estate": 3, "Materials": 2,
	}
	exUSMarket = allocation.Distribution{
		"Financials": 20, "Industrials": 15, "Technology": 13,
		"Consumer Discretionary": 11, "Health Care": 9, "Consumer Staples": 8,
		"Materials": 7, "Communication Services": 6, "Energy": 5,
		"Utilities": 3, "Real Estate": 3,
	}
	emergingMarket = allocation.Distribution{
		"Technology": 22, "Financials": 22, "Consumer Discretionary": 13,
		"Communication Services": 10, "Industrials": 7, "Materials": 7,
		"Energy": 5, "Consumer Staples": 5, "Health Care": 4,
		"Utilities": 3, "Real Estate": 2,
	}
	aggregateBond = allocation.Distribution{
		"Other": 60, "Long-Term Treasuries": 25, "Short-Term Treasuries": 15,
	}
)

// builtinClassifications covers the common index funds so a fresh install
// produces sensible breakdowns before any AI call happens.
var builtinClassifications = map[string]allocation.Classification{
	// US total market and S&P 500
	"VTI":  {Region: allocation.Distribution{"US": 100}, Category: usBroadMarket},
	"ITOT": {Region: allocation.Distribution{"US": 100}, Category: usBroadMarket},
	"SPTM": {Region: allocation.Distribution{"US": 100}, Category: usBroadMarket},
	"VOO":  {Region: allocation.Distribution{"US": 100}, Category: usBroadMarket},
	"SPY":  {Region: allocation.Distribution{"US": 100}, Category: usBroadMarket},
	"IVV":  {Region: allocation.Distribution{"US": 100}, Category: usBroadMarket},
	"QQQ": {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{
		"Technology": 50, "Communication Services": 16, "Consumer Discretionary": 14,
		"Health Care": 6, "Consumer Staples": 6, "Industrials": 5,
		"Utilities": 1, "Financials": 1, "Materials": 1,
	}},

	// International developed
	"VXUS": {Region: allocation.Distribution{"DM": 75, "EM": 25}, Category: exUSMarket},
	"IXUS": {Region: allocation.Distribution{"DM": 75, "EM": 25}, Category: exUSMarket},
	"VEA":  {Region: allocation.Distribution{"DM": 100}, Category: exUSMarket},
	"EFA":  {Region: allocation.Distribution{"DM": 100}, Category: exUSMarket},
	"IEFA": {Region: allocation.Distribution{"DM": 100}, Category: exUSMarket},

	// Emerging markets
	"VWO":  {Region: allocation.Distribution{"EM": 100}, Category: emergingMarket},
	"EEM":  {Region: allocation.Distribution{"EM": 100}, Category: emergingMarket},
	"IEMG": {Region: allocation.Distribution{"EM": 100}, Category: emergingMarket},

	// Bonds and treasuries
	"BND":  {Region: allocation.Distribution{"US": 100}, Category: aggregateBond},
	"AGG":  {Region: allocation.Distribution{"US": 100}, Category: aggregateBond},
	"BNDX": {Region: allocation.Distribution{"DM": 70, "EM": 30}, Category: allocation.Distribution{"Other": 100}},
	"TLT":  {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Long-Term Treasuries": 100}},
	"VGIT": {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Long-Term Treasuries": 100}},
	"VGLT": {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Long-Term Treasuries": 100}},
	"SHY":  {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Short-Term Treasuries": 100}},
	"VGSH": {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Short-Term Treasuries": 100}},
	"SGOV": {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Short-Term Treasuries": 100}},
	"BIL":  {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Short-Term Treasuries": 100}},
	"SHV":  {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Short-Term Treasuries": 100}},

	// Precious metals
	"GLD":  {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Precious Metals": 100}},
	"GLDM": {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Precious Metals": 100}},
	"IAU":  {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Precious Metals": 100}},
	"SLV":  {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Precious Metals": 100}},
	"GDX":  {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Precious Metals": 100}},

	// Commodities
	"DBC":  {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Commodities": 100}},
	"GSG":  {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Commodities": 100}},
	"PDBC": {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Commodities": 100}},

	// Real estate
	"VNQ":  {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Real Estate": 100}},
	"IYR":  {Region: allocation.Distribution{"US": 100}, Category: allocation.Distribution{"Real Estate": 100}},
	"VNQI": {Region: allocation.Distribution{"DM": 60, "EM": 40}, Category: allocation.Distribution{"Real Estate": 100}},

	// Crypto
	"GBTC": {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Cryptocurrency": 100}},
	"IBIT": {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Cryptocurrency": 100}},
	"FBTC": {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Cryptocurrency": 100}},
	"ETHE": {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Cryptocurrency": 100}},
	"BITO": {Region: allocation.Distribution{"Global": 100}, Category: allocation.Distribution{"Cryptocurrency": 100}},
}

package tags

// entry pairs a four-character code with a display name.
type entry struct {
	tag  string
	name string
}

// blocks1 names the block types of format 1.
var blocks1 = [...]entry{
	{"Aicn", "ApplicationIcon"},
	{"BSbu", "BuildProjectStep"},
	{"BScf", "CopyFilesStep"},
	{"Bsls", "BuildStepsList"},
	{"BSsc", "IDEScriptStep"},
	{"BSsn", "SignProjectScriptStep"},
	{"BSts", "BuildAutomation"},
	{"colr", "ColorAsset"},
	{"IEsx", "ExternalScriptStep"},
	{"Img ", "MultiImage"},
	{"ioLS", "IOSLaunchScreen"},
	{"iosv", "IOSView"},
	{"Limg", "LaunchImages"},
	{"mobv", "MobileScreen"},
	{"pExt", "ExternalCode"},
	{"pFol", "Folder"},
	{"pFTy", "FileTypes"},
	{"pLay", "IOSLayout"},
	{"pMnu", "Menu"},
	{"pObj", "Module"},
	{"Proj", "Project"},
	{"pRpt", "Report"},
	{"pScn", "IOSScreen"},
	{"pTbr", "Toolbar"},
	{"pUIs", "UIState"},
	{"pVew", "Window"},
	{"pWPg", "WebPage"},
	{"pWSe", "WebSession"},
	{"pWSt", "WebStyle"},
	{"WrKr", "Worker"},
	{"xWbC", "WebContainer"},
	{"xWbV", "WebView"},
	{"xWSs", "WebSession"},
}

// blocks2 names the block types that format 2 adds to format 1.
var blocks2 = [...]entry{
	{"pDWn", "DesktopWindow"},
}

// fields names field tags. An empty name marks a field that is decoded but
// not emitted.
var fields = [...]entry{
	{"aivi", "AutoIncVersion"},
	{"Alas", "AliasName"},
	{"alis", "FileAlias"},
	{"Arch", ""},
	{"bApO", "IsApplicationObject"},
	{"BCar", "BuildCarbonMachOName"},
	{"bCls", "IsClass"},
	{"BCMO", "BuildCarbonMachOName"},
	{"bFAS", "BuildForAppStore"},
	{"Bflg", "BuildFlags"},
	{"bhlp", "ItemHelp"},
	{"binE", "BinaryEnum"},
	{"BL86", "BuildLinuxX86Name"},
	{"BMac", ""},
	{"BMDI", "BuildWinMDI"},
	{"BMSz", ""},
	{"bNtr", "IsInterface"},
	{"BSiz", ""},
	{"BunI", "BundleIdentifier"},
	{"BWin", "BuildWinName"},
	{"CBix", "ControlIndex"},
	{"ccls", "ControlClass"},
	{"Ci1a", "HLCItem1Attr"},
	{"Ci2a", "HLCItem2Attr"},
	{"CLan", "CurrentLanguage"},
	{"clr1", "ColorLight"},
	{"clr2", "ColorDark"},
	{"clrp", "ColorPlatform"},
	{"clrt", "ColorType"},
	{"cnfT", "ConformsTo"},
	{"Cni1", "HLCItem1"},
	{"Cni2", "HLCItem2"},
	{"CnLk", "HLCEditable"},
	{"CnMP", "HLCScale"},
	{"CnPr", "HLCPriority"},
	{"CnPv", "HLCValue"},
	{"CnRo", "HLCRelOp"},
	{"comM", "Comment"},
	{"Comp", "Compatibility"},
	{"Cont", "ObjContainerID"},
	{"cRDW", "CopyWindowsRedist"},
	{"data", "ItemData"},
	{"decl", "ItemDeclaration"},
	{"defn", "ItemDef"},
	{"DEnc", "DefaultEncoding"},
	{"Dest", "Subdirectory"},
	{"deVi", "Device"},
	{"devT", "DeviceType"},
	{"DgCL", "DebuggerCommandLine"},
	{"dhlp", ""},
	{"dkmd", "DarkMode"},
	{"DLan", "DefaultLanguage"},
	{"dscR", "Description"},
	{"DstR", "Destination"},
	{"DVew", "DefaultViewID"},
	{"Edpt", "EditingPartID"},
	{"enbl", "Enabled"},
	{"Enco", "TextEncoding"},
	{"EnVv", "EnvVars"},
	{"eSpt", ""},
	{"flag", "ItemFlags"},
	{"FTpt", "FilePhysicalType"},
	{"FTRk", "FileRank"},
	{"GDIp", "UseGDIPlus"},
	{"HCla", "HCLActive"},
	{"HCnm", "HLCName"},
	{"hidp", "HiDPI"},
	{"iArc", "IOSArchitecture"},
	{"Icon", "Icon"},
	{"iDDv", "IOSDebugDevice"},
	{"IDEv", "IDEVersion"},
	{"iLck", "Locked"},
	{"imPo", "Imported"},
	{"indx", "ItemIndex"},
	{"Intr", "Interfaces"},
	{"ioPP", "ProvisioningProfileName"},
	{"iOri", "IOSLayoutEditorViewOrientation"},
	{"iOsC", "IOSCapabilities"},
	{"isBn", "BuildiOSName"},
	{"itHd", "HeightDouble"},
	{"itHt", "Height"},
	{"itWd", "Width"},
	{"itwD", "WidthDouble"},
	{"IVer", "InfoVersion"},
	{"iVTy", "IOSLayoutEditorViewType"},
	{"kUTI", "UTIType"},
	{"lang", "ItemLanguage"},
	{"Lib ", "LibraryName"},
	{"linA", "LinuxArchitecture"},
	{"lncs", ""},
	{"lstH", ""},
	{"lstV", ""},
	{"LVer", "LongVersion"},
	{"macA", "MacArchitecture"},
	{"MacC", "MacCreator"},
	{"maEn", "MenuAutoEnable"},
	{"MaxW", "WindowMaximized"},
	{"MDIc", "WinMDICaption"},
	{"MiMk", "MenuShortcutModifier"},
	{"mimT", "MimeType"},
	{"MiSK", "MenuShortcut"},
	{"mVis", "MenuItemVisible"},
	{"name", "ItemName"},
	{"Name", "ObjName"},
	{"ndsc", ""},
	{"ndsr", ""},
	{"NnRl", "NonRelease"},
	{"ntln", "NoteLine"},
	{"objC", "ObjectiveC"},
	{"ocls", "WebObjectClass"},
	{"OPSp", ""},
	{"oPtL", "OptimizationLevel"},
	{"orie", "Orientation"},
	{"Padn", ""},
	{"parm", "ItemParams"},
	{"pasw", ""},
	{"path", "FullPath"},
	{"PDef", "PropertyVal"},
	{"plFM", "Platform"},
	{"pltf", "ItemPlatform"},
	{"ppth", "PartialPath"},
	{"PrGp", "PropertyGroup"},
	{"prTp", "ProjectType"},
	{"prWA", "WebApp"},
	{"PSIV", "ProjectSavedInVers"},
	{"PtID", "PartID"},
	{"PVal", "PropertyValue"},
	{"rEdt", "EditBounds"},
	{"Regn", "Region"},
	{"Rels", "Release"},
	{"resZ", "Resolution"},
	{"rslt", "ItemResult"},
	{"runA", "WindowsRunAs"},
	{"SCtx", "ScriptText"},
	{"scut", "ItemShortcut"},
	{"SEdC", "EditorCount"},
	{"SEId", "EditorIndex"},
	{"SELn", "EditorLocation"},
	{"SEPt", "EditorPath"},
	{"shrd", "IsShared"},
	{"size", ""},
	{"Size", ""},
	{"Soft", "SoftLink"},
	{"spmu", "ItemSpecialMenu"},
	{"srcl", "SourceLine"},
	{"StpA", "StepAppliesTo"},
	{"stsc", ""},
	{"stsr", ""},
	{"StST", "SelectedTab"},
	{"styl", "ItemStyle"},
	{"Supr", "Superclass"},
	{"SVer", "ShortVersion"},
	{"svin", "SaveInfo"},
	{"SySF", "SystemFlags"},
	{"Targ", "Target"},
	{"text", "ItemText"},
	{"TVew", "DefaultTabletViewID"},
	{"type", "ItemType"},
	{"UsBF", "UseBuildsFolder"},
	{"Usin", "GlobalUsingClauses"},
	{"vbET", "EditorType"},
	{"Ver1", "MajorVersion"},
	{"Ver2", "MinorVersion"},
	{"Ver3", "SubVersion"},
	{"Vsbl", "Visible"},
	{"VwBh", "ViewBehavior"},
	{"WbAn", "WebHostingAppName"},
	{"WbDS", "WebDisconnectString"},
	{"WbHd", "WebHostingDomain"},
	{"WbHI", "WebHostingIdentifier"},
	{"WbLS", "WebLaunchString"},
	{"WcmN", "BuildWinCompanyName"},
	{"Wdpt", "WebDebugPort"},
	{"Web2", "WebVersion"},
	{"WHTM", "WebHTMLHeader"},
	{"WiFd", "BuildWinFileDescription"},
	{"winA", "WindowsArchitecture"},
	{"WiNm", "BuildWinInternalName"},
	{"wInV", "WebControlInitialValue"},
	{"WinV", "WindowsVersions"},
	{"Wpcl", "WebProtocol"},
	{"WpNm", "BuildWinProductName"},
	{"Wprt", "WebPort"},
	{"WptS", "WebSecurePort"},
	{"WSSI", "WebStyleStateID"},
}

type specialEntry struct {
	tag     string
	binding Binding
	name    string
}

// specials lists the tags that may be followed by a group frame.
var specials = [...]specialEntry{
	{"CBhv", BindGroup, "ControlBehavior"},
	{"CIns", BindGroup, "ConstantInstance"},
	{"clrR", BindGroup, "ColorRepresentation"},
	{"Cnst", BindGroup, "Constant"},
	{"CPal", BindSkip, "ColorPalette"},
	{"CPrg", BindGroup, "GetAccessor"},
	{"CPrs", BindGroup, "SetAccessor"},
	{"Ctrl", BindGroup, "Control"},
	{"Dmth", BindGroup, "DelegateDeclaration"},
	{"elem", BindGroup, "Element"},
	{"Enum", BindGroup, "Enumeration"},
	{"fTyp", BindGroup, "FileType"},
	{"HIns", BindGroup, "HookInstance"},
	{"HLCn", BindGroup, "HighLevelConstraint"},
	{"Hook", BindGroup, "Hook"},
	{"Icon", BindGroup, "Icon"},
	{"ImgR", BindGroup, "ImageRepresentation"},
	{"ImgS", BindGroup, "ImageSpecification"},
	{"iSCI", BindGroup, "ScreenContentItem"},
	{"Meth", BindGroup, "Method"},
	{"MItm", BindGroup, "MenuItem"},
	{"MnuH", BindGroup, "MenuHandler"},
	{"Note", BindGroup, "Note"},
	{"PDef", BindProperty, "PropertyVal"},
	{"Prop", BindGroup, "Property"},
	{"Rpsc", BindGroup, "ReportSection"},
	{"SEdr", BindGroup, "Editor"},
	{"SEds", BindGroup, "Editors"},
	{"segC", BindGroup, "SegmentedControl"},
	{"sorc", BindGroup, "ItemSource"},
	{"Strx", BindGroup, "Structure"},
	{"SwSt", BindGroup, "StudioWindowState"},
	{"ti  ", BindGroup, "ToolItem"},
	{"USng", BindGroup, "Using"},
	{"VwBh", BindGroup, "ViewBehavior"},
	{"VwPr", BindGroup, "ViewProperty"},
	{"WrnP", BindGroup, "WarningPreferences"},
	{"WSSG", BindGroup, "WebStyleStateGroup"},
	{"XMth", BindGroup, "ExternalMethod"},
	{"FDef", BindWrapper, ""},
	{"Dseg", BindGroup, "DesktopSegmentedButton"},
}
